package bootstrap

import (
	"testing"

	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/domain/models"
	"github.com/lexhub/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSuperAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{
		SuperAdminEmail:    "superadmin@test.com",
		SuperAdminPassword: "initial-password",
	}

	if err := ensureSuperAdmin(ctx, cfg, deps, testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "superadmin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if !user.HasRole("superadmin") {
		t.Errorf("expected superadmin role, got %v", user.Roles)
	}
	if user.CreatedBy != nil {
		t.Error("expected superadmin to have nil created_by")
	}
	if user.Status != "active" {
		t.Errorf("expected status 'active', got %q", user.Status)
	}
	if !userstore.CheckPassword(user.PasswordHash, "initial-password") {
		t.Error("configured password should verify against the stored hash")
	}
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	hash, err := userstore.HashPassword("whatever")
	if err != nil {
		t.Fatal(err)
	}
	existing, err := users.Create(ctx, models.User{
		FullName:     "Existing Owner",
		Email:        "existing@test.com",
		Roles:        []string{"company"},
		PasswordHash: hash,
		Status:       "active",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{SuperAdminEmail: "existing@test.com"}
	if err := ensureSuperAdmin(ctx, cfg, deps, testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	got, err := users.GetByID(ctx, existing.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasRole("superadmin") {
		t.Errorf("expected promotion to superadmin, got %v", got.Roles)
	}
	if !got.HasRole("company") {
		t.Errorf("promotion should keep existing roles, got %v", got.Roles)
	}
}

func TestEnsureSuperAdmin_MissingPasswordFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{SuperAdminEmail: "nobody@test.com"}

	if err := ensureSuperAdmin(ctx, cfg, deps, testLogger()); err == nil {
		t.Fatal("expected an error when the user does not exist and no password is configured")
	}
}
