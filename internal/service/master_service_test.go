package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

// ── Users ─────────────────────────────────────────────────────────────────────

func newUserReq(email, username, personal string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username:       username,
		EmailSF:        email,
		Password:       "secret12",
		PersonalNumber: personal,
		Dept:           "PROC",
		Department:     "Procurement",
		Division:       "Supply Chain",
	}
}

func TestUserService_CreateDefaultsRoleAndHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewUserService(repo, fixedClock())

	resp, err := svc.Create(context.Background(), newUserReq("a@patria.co.id", "andi", "1001"))
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	assert.NotEqual(t, "secret12", repo.users[resp.UserID].Password)
}

func TestUserService_CreateRejectsBadInput(t *testing.T) {
	svc := service.NewUserService(newStubUserRepo(), fixedClock())

	short := newUserReq("a@patria.co.id", "andi", "1001")
	short.Password = "12345"
	_, err := svc.Create(context.Background(), short)
	assert.Equal(t, "Password must be between 6 and 12 characters", err.Error())

	long := newUserReq("a@patria.co.id", "andi", "1001")
	long.Password = "1234567890123"
	_, err = svc.Create(context.Background(), long)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = svc.Create(context.Background(), newUserReq("a@patria.co.id", "andi", "12a"))
	assert.Equal(t, "Personal number must be numeric and max 15 digits", err.Error())

	_, err = svc.Create(context.Background(), newUserReq("a@patria.co.id", "andi", "1234567890123456"))
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestUserService_Uniqueness(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewUserService(repo, fixedClock())
	ctx := context.Background()

	first, err := svc.Create(ctx, newUserReq("a@patria.co.id", "andi", "1001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, newUserReq("a@patria.co.id", "budi", "1002"))
	assert.Equal(t, "Email already exists", err.Error())
	assert.Equal(t, http.StatusBadRequest, apierror.Status(err))

	_, err = svc.Create(ctx, newUserReq("b@patria.co.id", "andi", "1002"))
	assert.Equal(t, "Username already exists", err.Error())

	_, err = svc.Create(ctx, newUserReq("b@patria.co.id", "budi", "1001"))
	assert.Equal(t, "Personal number already exists", err.Error())

	// Updating a user with its own values is not a conflict.
	_, err = svc.Update(ctx, first.UserID, dto.UpdateUserRequest{
		EmailSF: strp("a@patria.co.id"), Username: strp("andi"), PersonalNumber: strp("1001"),
	})
	assert.NoError(t, err)

	// A soft-deleted user no longer blocks its email.
	require.NoError(t, svc.Delete(ctx, first.UserID))
	_, err = svc.Create(ctx, newUserReq("a@patria.co.id", "andi", "1001"))
	assert.NoError(t, err)
}

func TestUserService_DeletedIsNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewUserService(repo, fixedClock())
	ctx := context.Background()

	u, err := svc.Create(ctx, newUserReq("a@patria.co.id", "andi", "1001"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u.UserID))

	_, err = svc.Get(ctx, u.UserID)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	_, err = svc.Update(ctx, u.UserID, dto.UpdateUserRequest{Dept: strp("X")})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.True(t, apierror.IsKind(svc.Delete(ctx, u.UserID), apierror.KindNotFound))
}

// ── Plants ────────────────────────────────────────────────────────────────────

func TestPlantService_DuplicateCode(t *testing.T) {
	svc := service.NewPlantService(newStubPlantRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.PlantRequest{Plant: "1100", Name: strp("Balikpapan")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.PlantRequest{Plant: "1100"})
	assert.Equal(t, "Plant code already exists", err.Error())
	assert.Equal(t, http.StatusBadRequest, apierror.Status(err))

	updated, err := svc.Update(ctx, p.PlantID, dto.PlantRequest{Plant: "1100", City: strp("Balikpapan")})
	require.NoError(t, err)
	assert.Equal(t, "Balikpapan", *updated.City)

	_, err = svc.Get(ctx, 99)
	assert.Equal(t, "Plant not found", err.Error())
}

// ── KBLI ──────────────────────────────────────────────────────────────────────

func TestKbliService(t *testing.T) {
	repo := newStubKbliRepo()
	svc := service.NewKbliService(repo, fixedClock())
	ctx := context.Background()
	req := dto.KbliRequest{Year: "2020", Code: "46100", Title: "Perdagangan", Description: "Besar"}

	_, err := svc.Create(ctx, dto.KbliRequest{Code: "46100"})
	assert.Equal(t, "Missing required fields", err.Error())

	k, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, k.Enable)

	_, err = svc.Create(ctx, req)
	assert.Equal(t, "KBLI Code is using", err.Error())
	assert.Equal(t, http.StatusConflict, apierror.Status(err))

	require.NoError(t, svc.Delete(ctx, k.ID))
	_, err = svc.Get(ctx, k.ID)
	assert.Equal(t, "KBLI not found", err.Error())

	// A disabled code can be reused.
	_, err = svc.Create(ctx, req)
	assert.NoError(t, err)
}
