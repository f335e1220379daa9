package config

import "testing"

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := GetDefaults()
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("defaults should validate, got: %v", err)
	}
}

func TestValidateConfigRejectsBadPort(t *testing.T) {
	cfg := GetDefaults()
	cfg.Server.Port = 0
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidateConfigRejectsUnknownActiveSet(t *testing.T) {
	cfg := GetDefaults()
	cfg.Rules.ActiveSet = "lenient"
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected error for unknown active set")
	}
}

func TestValidateConfigRejectsNegativeSampleCap(t *testing.T) {
	cfg := GetDefaults()
	cfg.Sampling.SampleCap = -1
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected error for negative sample cap")
	}
}

func TestValidateConfigRejectsBadLogLevel(t *testing.T) {
	cfg := GetDefaults()
	cfg.Logging.Level = "verbose"
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestValidateConfigRejectsBadLogFormat(t *testing.T) {
	cfg := GetDefaults()
	cfg.Logging.Format = "xml"
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected error for invalid log format")
	}
}
