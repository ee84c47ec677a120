// ABOUTME: Charm KV client used as the backup store for account payloads
// ABOUTME: Lazy singleton; every method falls through to a badger-backed test client in tests
package charm

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

// AccountKeyPrefix namespaces account backup payloads in the KV store.
// Everything under it is owned by sync backup/restore; other keys are
// left alone by prune and restore passes.
const AccountKeyPrefix = "account:"

var (
	shared     *Client
	sharedOnce sync.Once
	sharedErr  error
)

// Client wraps charm KV for the backup commands. The zero-value kv field
// with a non-nil testClient is the test configuration; see testhelper.go.
type Client struct {
	kv         *kv.KV
	config     *Config
	mu         sync.RWMutex
	testClient *testClient
}

// GetClient returns the shared client, opening the KV store on first use.
func GetClient() (*Client, error) {
	sharedOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			sharedErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		// charm reads the server host from the environment
		_ = os.Setenv("CHARM_HOST", cfg.Host)

		store, err := kv.OpenWithDefaults(AppName)
		if err != nil {
			sharedErr = fmt.Errorf("failed to open charm kv: %w", err)
			return
		}

		shared = &Client{kv: store, config: cfg}

		// Pull remote changes before the first read
		if cfg.AutoSync {
			_ = store.Sync()
		}
	})
	if sharedErr != nil {
		return nil, sharedErr
	}
	if shared == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return shared, nil
}

// Close releases the KV store.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// charm/kv exposes no Close; badger cleans up on process exit
	return nil
}

// Config returns the connection settings the client was opened with.
func (c *Client) Config() *Config {
	if c.testClient != nil {
		return c.testClient.Config()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// ID returns the charm account ID this device's SSH key resolves to.
func (c *Client) ID() (string, error) {
	if c.testClient != nil {
		return "test-device", nil
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected reports whether the device can reach its charm account.
func (c *Client) IsConnected() bool {
	if c.testClient != nil {
		return true
	}
	_, err := c.ID()
	return err == nil
}

// Sync pulls and pushes pending changes with the charm server.
func (c *Client) Sync() error {
	if c.testClient != nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Get retrieves a value by key.
func (c *Client) Get(key []byte) ([]byte, error) {
	if c.testClient != nil {
		return c.testClient.Get(key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get(key)
}

// Set stores a value, syncing immediately when auto-sync is on.
func (c *Client) Set(key, value []byte) error {
	if c.testClient != nil {
		return c.testClient.Set(key, value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set(key, value); err != nil {
		return err
	}

	// Sync under the same lock so a concurrent write cannot interleave
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Delete removes a key, syncing immediately when auto-sync is on.
func (c *Client) Delete(key []byte) error {
	if c.testClient != nil {
		return c.testClient.Delete(key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(key); err != nil {
		return err
	}

	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Keys returns every key in the store.
func (c *Client) Keys() ([][]byte, error) {
	if c.testClient != nil {
		return c.testClient.Keys()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}

// KeysWithPrefix returns the keys in a namespace, e.g. AccountKeyPrefix.
func (c *Client) KeysWithPrefix(prefix []byte) ([][]byte, error) {
	allKeys, err := c.Keys()
	if err != nil {
		return nil, err
	}

	var matched [][]byte
	for _, k := range allKeys {
		if len(k) >= len(prefix) && string(k[:len(prefix)]) == string(prefix) {
			matched = append(matched, k)
		}
	}
	return matched, nil
}

// Reset drops every key in the store. The account link survives; only
// data is wiped.
func (c *Client) Reset() error {
	if c.testClient != nil {
		return c.testClient.Reset()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}
