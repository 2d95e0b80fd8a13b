package catalog_test

import (
	"errors"
	"fmt"
	"testing"

	"catalogpricing/catalog"
	"catalogpricing/testhelpers"
)

func TestCreateServiceComputesMargin(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name       string
		net, gross float64
		wantMargin float64
	}{
		{"positive", 100.00, 130.00, 30.00},
		{"negative", 100.00, 90.00, -10.00},
		{"zero", 50.00, 50.00, 0.00},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := catalog.CreateService(app, catalog.ServiceParams{
				Code: fmt.Sprintf("SRV-%03d", i+1), Name: "Prestation",
				PriceNet: tt.net, PriceGross: tt.gross,
			})
			if err != nil {
				t.Fatalf("CreateService failed: %v", err)
			}
			if got := r.GetFloat("margin"); got != tt.wantMargin {
				t.Errorf("margin = %v, want %v", got, tt.wantMargin)
			}
		})
	}
}

func TestCreateServiceDefaultsUnit(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	r, err := catalog.CreateService(app, catalog.ServiceParams{
		Code: "SRV-001", Name: "Forfait", PriceNet: 10, PriceGross: 15,
	})
	if err != nil {
		t.Fatalf("CreateService failed: %v", err)
	}
	if got := r.GetString("unit"); got != "ft" {
		t.Errorf("unit = %q, want the ft default", got)
	}
}

func TestCreateServiceValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := catalog.CreateService(app, catalog.ServiceParams{
		Name: "Sans code", PriceNet: 10, PriceGross: 15,
	}); !errors.Is(err, catalog.ErrCodeRequired) {
		t.Errorf("err = %v, want ErrCodeRequired", err)
	}

	if _, err := catalog.CreateService(app, catalog.ServiceParams{
		Code: "SRV-001", Name: "Négatif", PriceNet: -1, PriceGross: 15,
	}); err == nil {
		t.Error("expected an error for a negative net price")
	}
}

func TestCreateServiceDuplicateCode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestService(t, app, "SRV-001", 100, 130)

	_, err := catalog.CreateService(app, catalog.ServiceParams{
		Code: "SRV-001", Name: "Doublon", PriceNet: 10, PriceGross: 15,
	})
	if !errors.Is(err, catalog.ErrDuplicateCode) {
		t.Errorf("err = %v, want ErrDuplicateCode", err)
	}
}

func TestUpdateServiceRecomputesMargin(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	r := testhelpers.CreateTestService(t, app, "SRV-001", 100, 130)

	updated, err := catalog.UpdateService(app, r.Id, catalog.ServiceUpdate{
		PriceGross: floatPtr(150.00),
	})
	if err != nil {
		t.Fatalf("UpdateService failed: %v", err)
	}
	if got := updated.GetFloat("margin"); got != 50.00 {
		t.Errorf("margin = %v, want 50.00", got)
	}

	// Lowering gross below net flips the margin negative.
	updated, err = catalog.UpdateService(app, r.Id, catalog.ServiceUpdate{
		PriceGross: floatPtr(80.00),
	})
	if err != nil {
		t.Fatalf("UpdateService failed: %v", err)
	}
	if got := updated.GetFloat("margin"); got != -20.00 {
		t.Errorf("margin = %v, want -20.00", got)
	}
}

func TestDeactivateService(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	r := testhelpers.CreateTestService(t, app, "SRV-001", 100, 130)

	if err := catalog.DeactivateService(app, r.Id); err != nil {
		t.Fatalf("DeactivateService failed: %v", err)
	}
	reloaded, _ := app.FindRecordById("services", r.Id)
	if reloaded.GetBool("is_active") {
		t.Error("service still active after deactivation")
	}
}
