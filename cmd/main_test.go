package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-09-01"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2026-09-01") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, logLevel, storageMode,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword, cacheTTLSecond,
		kafkaBroker, kafkaTopic,
		jwtSecret, jwtExp,
		seedDemo, historySeed,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" || storageMode != "memory" {
		t.Errorf("unexpected app config: %v/%v/%v/%v", appHost, appPort, logLevel, storageMode)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "horizon" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis is disabled by default
	if redisAddr != "" || redisDB != 0 || redisPassword != "" || cacheTTLSecond != 60 {
		t.Errorf("unexpected redis config: %v/%v/%v/%v", redisAddr, redisDB, redisPassword, cacheTTLSecond)
	}

	// Kafka is disabled by default
	if kafkaBroker != "" || kafkaTopic != "horizon.transactions" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBroker, kafkaTopic)
	}

	// JWT
	if jwtSecret != "my_super_secret_key" || jwtExp != 3600 {
		t.Errorf("unexpected jwt config: %v/%v", jwtSecret, jwtExp)
	}

	// Seeding defaults: enabled, with a time-derived random seed
	if !seedDemo {
		t.Errorf("expected seeding enabled by default")
	}
	if historySeed == 0 {
		t.Errorf("expected a non-zero history seed")
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	resetEnv()
	defer resetEnv()

	os.Setenv("APP_HOST", "0.0.0.0")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_STORAGE", "postgres")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("REDIS_ADDR", "localhost:6379")
	os.Setenv("KAFKA_BROKER", "localhost:9092")
	os.Setenv("SEED_DEMO", "false")
	os.Setenv("HISTORY_SEED", "42")

	appHost, appPort, _, storageMode,
		_, pgPort, _, _, _,
		_, _,
		redisAddr, _, _, _,
		kafkaBroker, _,
		_, _,
		seedDemo, historySeed,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "0.0.0.0" || appPort != "9090" || storageMode != "postgres" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, storageMode)
	}
	if pgPort != 5433 {
		t.Errorf("unexpected postgres port: %v", pgPort)
	}
	if redisAddr != "localhost:6379" {
		t.Errorf("unexpected redis addr: %v", redisAddr)
	}
	if kafkaBroker != "localhost:9092" {
		t.Errorf("unexpected kafka broker: %v", kafkaBroker)
	}
	if seedDemo {
		t.Errorf("expected seeding disabled")
	}
	if historySeed != 42 {
		t.Errorf("unexpected history seed: %v", historySeed)
	}
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()
	defer resetEnv()

	os.Setenv("POSTGRES_PORT", "not-a-number")

	_, _, _, _,
		_, _, _, _, _,
		_, _,
		_, _, _, _,
		_, _,
		_, _,
		_, _,
		err := parseConfig("nonexistent.env")

	if err == nil {
		t.Fatal("expected error for invalid POSTGRES_PORT")
	}
}
