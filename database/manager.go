package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"adcraft/utils"
)

// Manager owns the MongoDB client and hands out cached collections.
type Manager struct {
	client      *mongo.Client
	database    *mongo.Database
	collections map[string]*mongo.Collection
	mu          sync.RWMutex
	config      *Config
}

type Config struct {
	MongoURI        string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
	ServerTimeout   time.Duration
	SocketTimeout   time.Duration
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager returns the singleton database manager.
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{
			collections: make(map[string]*mongo.Collection),
		}
	})
	return instance
}

// Initialize connects to MongoDB and verifies the connection.
func (m *Manager) Initialize(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return fmt.Errorf("database already initialized")
	}

	m.config = config

	clientOptions := options.Client().
		ApplyURI(config.MongoURI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetMaxConnIdleTime(config.MaxConnIdleTime).
		SetServerSelectionTimeout(config.ServerTimeout).
		SetSocketTimeout(config.SocketTimeout).
		SetConnectTimeout(config.ConnectTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.database = m.client.Database(config.DatabaseName)

	utils.Logger().Info("connected to MongoDB", zap.String("database", config.DatabaseName))
	return nil
}

// GetCollection returns a cached collection instance.
func (m *Manager) GetCollection(name string) *mongo.Collection {
	m.mu.RLock()
	if collection, exists := m.collections[name]; exists {
		m.mu.RUnlock()
		return collection
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if collection, exists := m.collections[name]; exists {
		return collection
	}

	collection := m.database.Collection(name)
	m.collections[name] = collection
	return collection
}

// GetClient returns the MongoDB client. Needed for starting sessions.
func (m *Manager) GetClient() *mongo.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

// GetDatabase returns the database handle.
func (m *Manager) GetDatabase() *mongo.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.database
}

// Close disconnects from MongoDB.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	m.client = nil
	m.database = nil
	m.collections = make(map[string]*mongo.Collection)

	utils.Logger().Info("database connection closed")
	return nil
}

// HealthCheck verifies database connectivity.
func (m *Manager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("database not initialized")
	}

	return client.Ping(ctx, readpref.Primary())
}
