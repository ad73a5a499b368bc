package service

import (
	"strings"
	"testing"

	"github.com/adnex-platform/partner-api/internal/models"
)

func TestMaskSensitiveDataKnownFields(t *testing.T) {
	details := models.JSON{
		"accountNumber": "123456789012",
		"routingNumber": "021000021",
		"cardNumber":    "4111111111111111",
		"cvv":           "123",
		"email":         "partner@example.com",
		"walletAddress": "0xAbCd1234567890DeadBeef9876",
		"privateKey":    "super-secret-key",
	}

	masked := MaskSensitiveData(details)

	cases := map[string]string{
		"accountNumber": "****9012",
		"routingNumber": "****0021",
		"cardNumber":    "****1111",
		"cvv":           "***",
		"email":         "par***@example.com",
		"walletAddress": "0xAb...9876",
		"privateKey":    "[REDACTED]",
	}
	for key, want := range cases {
		if got := masked[key]; got != want {
			t.Fatalf("%s: want %q got %q", key, want, got)
		}
	}
}

func TestMaskSensitiveDataUnknownFieldsMasked(t *testing.T) {
	masked := MaskSensitiveData(models.JSON{
		"iban":      "DE89370400440532013000",
		"swiftCode": "COBADEFFXXX",
		"attempts":  3,
	})
	for key, value := range masked {
		if value != "***" {
			t.Fatalf("unknown field %s leaked: %v", key, value)
		}
	}
	if len(masked) != 3 {
		t.Fatalf("want 3 fields got %d", len(masked))
	}
}

func TestMaskSensitiveDataEdgeCases(t *testing.T) {
	if got := MaskSensitiveData(nil); len(got) != 0 {
		t.Fatalf("nil details should mask to empty object, got %v", got)
	}

	masked := MaskSensitiveData(models.JSON{
		"accountNumber": "123",
		"email":         "ab@example.com",
		"walletAddress": "shortadr",
	})
	if masked["accountNumber"] != "****" {
		t.Fatalf("short account number must be fully redacted, got %v", masked["accountNumber"])
	}
	if masked["email"] != "ab***@example.com" {
		t.Fatalf("short email local part: got %v", masked["email"])
	}
	if masked["walletAddress"] != "***" {
		t.Fatalf("short wallet address should fully mask, got %v", masked["walletAddress"])
	}
}

func TestMaskSensitiveDataNeverEchoesSecret(t *testing.T) {
	secrets := []string{"1", "12", "123", "1234", "123456789012"}
	for _, secret := range secrets {
		masked := MaskSensitiveData(models.JSON{"accountNumber": secret})
		got, ok := masked["accountNumber"].(string)
		if !ok {
			t.Fatalf("accountNumber should mask to a string, got %T", masked["accountNumber"])
		}
		if strings.Contains(got, secret) {
			t.Fatalf("masked value %q reveals secret %q", got, secret)
		}
	}
}
