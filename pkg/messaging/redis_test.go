package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "docker.io/redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisPublisher_RoundTrip(t *testing.T) {
	client := setupRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := Subscribe(ctx, client, "qms.audit")
	require.NoError(t, err)

	pub := NewPublisherFromClient(client)
	require.NoError(t, pub.Publish(ctx, "qms.audit", map[string]interface{}{"action": "CREATE", "record_id": 4}))
	require.NoError(t, pub.Close())

	select {
	case msg := <-messages:
		assert.Equal(t, "qms.audit", msg.Channel)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "CREATE", payload["action"])
		assert.Equal(t, float64(4), payload["record_id"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}

	// The client is borrowed, so closing the publisher leaves it usable.
	assert.NoError(t, client.Ping(ctx).Err())
}

func TestLogPublisher(t *testing.T) {
	pub := NewLogPublisher(zap.NewNop())
	assert.NoError(t, pub.Publish(context.Background(), "qms.audit", struct{}{}))
	assert.NoError(t, pub.Close())
}

func TestRedisPublisher_MarshalError(t *testing.T) {
	pub := NewPublisherFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	err := pub.Publish(context.Background(), "qms.audit", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal message")
}
