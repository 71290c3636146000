// ABOUTME: Charm KV client wrapper for cloud backup of coach records
// ABOUTME: Pushes routine, activity, task and conversation snapshots with SSH key auth
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harper/daily-coach/internal/models"
)

// Key prefixes for different record kinds
const (
	RoutinePrefix      = "routine:"
	ActivityPrefix     = "activity:"
	TaskPrefix         = "task:"
	ConversationPrefix = "conversation:"
)

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:     host,
		DBName:   "coach",
		AutoSync: true,
	}
}

// KV is the subset of the charm kv store the client uses
type KV interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
}

var _ KV = (*kv.KV)(nil)

// SnapshotSource is the read side of the store that gets backed up
type SnapshotSource interface {
	ListRoutines() ([]models.Routine, error)
	ListTasks(limit int) ([]models.Task, error)
	RecentActivities(sinceDate string, limit int) ([]models.Activity, error)
	RecentConversations(limit int) ([]models.ConversationTurn, error)
}

// PushResult counts the records written by PushSnapshot
type PushResult struct {
	Routines      int `json:"routines"`
	Activities    int `json:"activities"`
	Tasks         int `json:"tasks"`
	Conversations int `json:"conversations"`
}

// Total is the number of records written
func (r PushResult) Total() int {
	return r.Routines + r.Activities + r.Tasks + r.Conversations
}

// Client wraps charm KV for backup operations
type Client struct {
	kv     KV
	config *Config
	mu     sync.Mutex
}

// NewClient opens the charm KV database named in cfg
func NewClient(cfg *Config) (*Client, error) {
	// charm reads the host from the environment
	if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
		return nil, fmt.Errorf("failed to set CHARM_HOST: %w", err)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := NewClientWithKV(db, cfg)

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// NewClientWithKV wraps an already opened store
func NewClientWithKV(store KV, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{kv: store, config: cfg}
}

// Close closes the KV database
func (c *Client) Close() error {
	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// Host returns the configured charm host
func (c *Client) Host() string {
	return c.config.Host
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() error {
	if c.config.AutoSync {
		return c.kv.Sync()
	}
	return nil
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Set stores a value with the given key
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return c.syncIfEnabled()
}

// Get retrieves a value by key
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.kv.Get([]byte(key))
}

// Delete removes a key
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return c.syncIfEnabled()
}

// GetJSON retrieves and unmarshals a JSON value
func (c *Client) GetJSON(key string, dest interface{}) error {
	data, err := c.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("key not found: %s", key)
	}
	return json.Unmarshal(data, dest)
}

// ListKeys returns all keys with the given prefix
func (c *Client) ListKeys(prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []string
	for _, key := range keys {
		keyStr := string(key)
		if strings.HasPrefix(keyStr, prefix) {
			result = append(result, keyStr)
		}
	}
	return result, nil
}

// CountKeys reports how many records of each kind are in the KV store
func (c *Client) CountKeys() (PushResult, error) {
	var counts PushResult
	for prefix, n := range map[string]*int{
		RoutinePrefix:      &counts.Routines,
		ActivityPrefix:     &counts.Activities,
		TaskPrefix:         &counts.Tasks,
		ConversationPrefix: &counts.Conversations,
	} {
		keys, err := c.ListKeys(prefix)
		if err != nil {
			return PushResult{}, err
		}
		*n = len(keys)
	}
	return counts, nil
}

// PushSnapshot writes every record from src under its kind's prefix and
// syncs once at the end. Records keep their ids, so pushing twice
// overwrites rather than duplicates.
func (c *Client) PushSnapshot(src SnapshotSource) (PushResult, error) {
	var result PushResult

	routines, err := src.ListRoutines()
	if err != nil {
		return result, fmt.Errorf("failed to read routines: %w", err)
	}
	activities, err := src.RecentActivities("", 0)
	if err != nil {
		return result, fmt.Errorf("failed to read activities: %w", err)
	}
	tasks, err := src.ListTasks(0)
	if err != nil {
		return result, fmt.Errorf("failed to read tasks: %w", err)
	}
	turns, err := src.RecentConversations(0)
	if err != nil {
		return result, fmt.Errorf("failed to read conversations: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range routines {
		if err := c.putJSON(RoutineKey(r.ID), r); err != nil {
			return result, err
		}
		result.Routines++
	}
	for _, a := range activities {
		if err := c.putJSON(ActivityKey(a.ID), a); err != nil {
			return result, err
		}
		result.Activities++
	}
	for _, t := range tasks {
		if err := c.putJSON(TaskKey(t.ID), t); err != nil {
			return result, err
		}
		result.Tasks++
	}
	for _, turn := range turns {
		if err := c.putJSON(ConversationKey(turn.ID), turn); err != nil {
			return result, err
		}
		result.Conversations++
	}

	if err := c.syncIfEnabled(); err != nil {
		return result, fmt.Errorf("sync failed: %w", err)
	}
	return result, nil
}

// putJSON writes one value without syncing; callers hold c.mu
func (c *Client) putJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	return c.kv.Sync()
}

// Reset wipes all local data (nuclear option)
func (c *Client) Reset() error {
	return c.kv.Reset()
}

// GetAuthorizedKeys returns the list of linked devices/keys
func (c *Client) GetAuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// UnlinkKey removes an authorized key from the account
func (c *Client) UnlinkKey(key string) error {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.UnlinkAuthorizedKey(key)
}

// RoutineKey generates a key for a Routine
func RoutineKey(id string) string {
	return RoutinePrefix + id
}

// ActivityKey generates a key for an Activity
func ActivityKey(id string) string {
	return ActivityPrefix + id
}

// TaskKey generates a key for a Task
func TaskKey(id string) string {
	return TaskPrefix + id
}

// ConversationKey generates a key for a ConversationTurn
func ConversationKey(id string) string {
	return ConversationPrefix + id
}
