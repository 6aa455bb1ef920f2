package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conectaong/voluntariado-api/apperrors"
	"github.com/conectaong/voluntariado-api/models"
)

func validAction() models.CreateActionRequest {
	start := time.Now().Add(24 * time.Hour)
	return models.CreateActionRequest{
		Title:         "Mutirão de limpeza",
		Description:   "Limpeza da praia",
		Area:          "meio-ambiente",
		Location:      models.LocationRequest{City: "Santos", State: "SP"},
		StartDate:     start,
		EndDate:       start.Add(4 * time.Hour),
		MaxVolunteers: 10,
	}
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(validAction()))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()

	req := validAction()
	req.Title = "   "
	req.MaxVolunteers = 0
	req.EndDate = req.StartDate.Add(-time.Hour)
	req.Status = "finished"

	err := v.Validate(req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "campo obrigatório", appErr.Fields["title"])
	assert.Equal(t, "campo obrigatório", appErr.Fields["maxVolunteers"])
	assert.Equal(t, "deve ser posterior ou igual à data de início", appErr.Fields["endDate"])
	assert.Equal(t, "deve ser um de: draft, active", appErr.Fields["status"])
}

func TestValidate_NestedFieldPath(t *testing.T) {
	v := New()

	req := models.UpdateVolunteerRequest{
		Location: &models.LocationRequest{City: string(make([]byte, 81))},
	}
	err := v.Validate(req)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "location.city")
}

func TestValidate_ObjectID(t *testing.T) {
	v := New()

	err := v.Validate(models.CreateApplicationRequest{Action: "not-an-id"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "identificador inválido", appErr.Fields["action"])

	assert.NoError(t, v.Validate(models.CreateApplicationRequest{Action: primitive.NewObjectID().Hex()}))
}

func TestValidate_RejectionReasonRequiredWhenRejecting(t *testing.T) {
	v := New()

	err := v.Validate(models.ApplicationStatusRequest{Status: models.ApplicationStatusRejected})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "rejectionReason")

	assert.NoError(t, v.Validate(models.ApplicationStatusRequest{Status: models.ApplicationStatusApproved}))
}
