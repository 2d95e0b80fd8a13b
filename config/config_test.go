package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COMPANY_NAME", "")
	t.Setenv("EUR_LEI_RATE", "")
	t.Setenv("DEFAULT_MARGIN", "")
	t.Setenv("DEFAULT_OVERHEAD", "")

	cfg := Load()

	if cfg.CompanyName != "Larox Franta" {
		t.Errorf("CompanyName = %q, want the default", cfg.CompanyName)
	}
	if cfg.EURLEIRate.String() != "4.85" {
		t.Errorf("EURLEIRate = %s, want 4.85", cfg.EURLEIRate)
	}
	if cfg.DefaultMargin.String() != "0.3" {
		t.Errorf("DefaultMargin = %s, want 0.3", cfg.DefaultMargin)
	}
	if cfg.DefaultOverhead.String() != "0.1" {
		t.Errorf("DefaultOverhead = %s, want 0.1", cfg.DefaultOverhead)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Autre Société")
	t.Setenv("EUR_LEI_RATE", "5.10")
	t.Setenv("DEFAULT_MARGIN", "0.25")
	t.Setenv("DEFAULT_OVERHEAD", "0.05")

	cfg := Load()

	if cfg.CompanyName != "Autre Société" {
		t.Errorf("CompanyName = %q", cfg.CompanyName)
	}
	if cfg.EURLEIRate.String() != "5.1" {
		t.Errorf("EURLEIRate = %s, want 5.1", cfg.EURLEIRate)
	}
	if cfg.DefaultMargin.String() != "0.25" {
		t.Errorf("DefaultMargin = %s, want 0.25", cfg.DefaultMargin)
	}
}

func TestGetDecimalParsesValue(t *testing.T) {
	t.Setenv("SOME_RATE", "1.2345")

	v := getDecimal("SOME_RATE", "0")
	if v.String() != "1.2345" {
		t.Errorf("getDecimal = %s, want 1.2345", v)
	}
}
