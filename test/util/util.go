// Package util provides the disposable infrastructure shared by the e2e
// tests.
//
// StartMosquitto, StartInflux and StartPostgres launch Docker containers with
// testcontainers-go and return the connection endpoint together with a
// cleanup function.
//
// WaitForHTTP and WaitForMetric poll an HTTP endpoint until it answers or
// exposes the wanted metric.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// Default timeouts for helper operations
	MosquittoReadyTimeout = 5 * time.Second
	MetricTimeout         = 5 * time.Second
	StartupTimeout        = 90 * time.Second

	pollInterval = 50 * time.Millisecond
)

// InfluxSetup holds the credentials the Influx container is initialized with.
type InfluxSetup struct {
	Org    string
	Bucket string
	Token  string
}

// poll calls check every pollInterval until it reports done, it fails, or
// ctx expires.
func poll(ctx context.Context, what string, check func() (bool, error)) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		ok, err := check()
		switch {
		case err != nil:
			return err
		case ok:
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", what, ctx.Err())
		case <-t.C:
		}
	}
}

func get(ctx context.Context, url string) (int, []byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, false
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err == nil
}

// WaitForHTTP polls url until it answers with status or ctx is done.
func WaitForHTTP(ctx context.Context, url string, status int) error {
	return poll(ctx, url+" not ready", func() (bool, error) {
		code, _, ok := get(ctx, url)
		return ok && code == status, nil
	})
}

// WaitForMetric polls metricsURL until its exposition contains substr.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	return poll(ctx, fmt.Sprintf("metric %q not found", substr), func() (bool, error) {
		_, body, ok := get(ctx, metricsURL)
		return ok && strings.Contains(string(body), substr), nil
	})
}

// run starts req and resolves scheme://host:port for its first exposed port.
// The returned cleanup also runs extra, if any.
func run(ctx context.Context, req tc.ContainerRequest, scheme string, extra func()) (string, func(), error) {
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		if extra != nil {
			extra()
		}
		return "", nil, err
	}
	cleanup := func() {
		_ = cont.Terminate(context.Background())
		if extra != nil {
			extra()
		}
	}
	port := strings.TrimSuffix(req.ExposedPorts[0], "/tcp")
	host, err := cont.Host(ctx)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	mapped, err := cont.MappedPort(ctx, nat.Port(port))
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return fmt.Sprintf("%s://%s:%s", scheme, host, mapped.Port()), cleanup, nil
}

// StartMosquitto launches a temporary Mosquitto broker that accepts
// anonymous clients and waits until a client can connect.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	dir, err := os.MkdirTemp("", "evprice-mosquitto")
	if err != nil {
		return "", nil, err
	}
	removeDir := func() { _ = os.RemoveAll(dir) }
	conf := filepath.Join(dir, "mosquitto.conf")
	body := "listener 1883\nallow_anonymous true\npersistence false\nlog_dest stdout\n"
	if err := os.WriteFile(conf, []byte(body), 0o644); err != nil {
		removeDir()
		return "", nil, err
	}

	broker, cleanup, err := run(ctx, tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{{
			HostFilePath:      conf,
			ContainerFilePath: "/mosquitto/config/mosquitto.conf",
			FileMode:          0o644,
		}},
	}, "tcp", removeDir)
	if err != nil {
		return "", nil, err
	}

	readyCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("evprice-ready")
	err = poll(readyCtx, "mosquitto not ready", func() (bool, error) {
		cli := paho.NewClient(opts)
		if tok := cli.Connect(); !tok.WaitTimeout(time.Second) || tok.Error() != nil {
			return false, nil
		}
		cli.Disconnect(100)
		return true, nil
	})
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return broker, cleanup, nil
}

// StartInflux launches InfluxDB 2.7 initialized with setup and returns its
// base URL.
func StartInflux(ctx context.Context, setup InfluxSetup) (string, func(), error) {
	return run(ctx, tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "evprice",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "evprice-password",
			"DOCKER_INFLUXDB_INIT_ORG":         setup.Org,
			"DOCKER_INFLUXDB_INIT_BUCKET":      setup.Bucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": setup.Token,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(StartupTimeout),
	}, "http", nil)
}

// StartPostgres launches PostgreSQL 16 and returns a connection URL for the
// evprice database.
func StartPostgres(ctx context.Context) (string, func(), error) {
	base, cleanup, err := run(ctx, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "evprice",
			"POSTGRES_PASSWORD": "evprice",
			"POSTGRES_DB":       "evprice",
		},
		// the entrypoint restarts the server once after init
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(StartupTimeout),
	}, "postgres", nil)
	if err != nil {
		return "", nil, err
	}
	url := strings.Replace(base, "postgres://", "postgres://evprice:evprice@", 1) + "/evprice?sslmode=disable"
	return url, cleanup, nil
}
