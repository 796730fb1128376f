// ABOUTME: Charm KV client wrapper for cloud-synced transcript storage
// ABOUTME: Constructed per run from config; authenticates with the local SSH key
package charm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// TranscriptPrefix namespaces saved question transcripts
const TranscriptPrefix = "transcript:"

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// Client wraps charm KV for storage operations
type Client struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

// NewClient opens the KV database named in cfg
func NewClient(cfg *Config) (*Client, error) {
	// charm reads the host from the environment
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// Host returns the charm server this client talks to
func (c *Client) Host() string {
	return c.config.Host
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
	c.syncIfEnabled()
	return nil
}

// Get retrieves a value by key. A missing key returns nil data and no error.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return data, err
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

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	return c.kv.Sync()
}

// Reset wipes all local data
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

// TranscriptKey generates a key for a saved transcript
func TranscriptKey(id string) string {
	return TranscriptPrefix + id
}
