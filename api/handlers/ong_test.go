package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/conectaong/voluntariado-api/api/handlers"
	"github.com/conectaong/voluntariado-api/api/validation"
	"github.com/conectaong/voluntariado-api/databases/mocks"
	"github.com/conectaong/voluntariado-api/models"
)

func TestOngFilter(t *testing.T) {
	filter := handlers.OngFilter(url.Values{"area": {"saúde"}, "state": {"PE"}, "q": {"vida"}})

	re := primitive.Regex{Pattern: "vida", Options: "i"}
	assert.Equal(t, bson.M{
		"isActive":       true,
		"areas":          "saúde",
		"location.state": primitive.Regex{Pattern: "PE", Options: "i"},
		"$or":            bson.A{bson.M{"name": re}, bson.M{"description": re}},
	}, filter)
}

func TestOng_OngsHandler(t *testing.T) {
	db := &mocks.OngDatabase{}
	db.On("CountDocuments", mock.Anything, bson.M{"isActive": true}).Return(int64(2), nil)
	db.On("Find", mock.Anything, bson.M{"isActive": true}, mock.Anything).Return([]models.Ong{{Name: "A"}, {Name: "B"}}, nil)

	h := handlers.Ong{DB: db, V: validation.New()}
	rr := serve(h.OngsHandler, newRequest(http.MethodGet, "/api/ongs", "", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[envelope[[]models.Ong]](t, rr)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(1), body.Pagination.Pages)
}

func TestOng_OngByIDHandler(t *testing.T) {
	id := primitive.NewObjectID()
	db := &mocks.OngDatabase{}
	db.On("FindOne", mock.Anything, bson.M{"_id": id, "isActive": true}).Return(nil, mongo.ErrNoDocuments)

	h := handlers.Ong{DB: db}
	rr := serve(h.OngByIDHandler, newRequest(http.MethodGet, "/", "", nil, map[string]string{"id": id.Hex()}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "ONG não encontrada", errorBody(t, rr).Message)
}

func TestOng_UpdateMyOngHandler(t *testing.T) {
	ong := principal(models.RoleOng)
	db := &mocks.OngDatabase{}
	db.On("UpdateOne", mock.Anything, bson.M{"_id": ong.ID}, mock.MatchedBy(func(u bson.M) bool {
		set := u["$set"].(bson.M)
		_, touchedAreas := set["areas"]
		return set["name"] == "Verde Vivo" && set["website"] == "https://verdevivo.org" && !touchedAreas
	})).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	db.On("FindOne", mock.Anything, bson.M{"_id": ong.ID}).Return(&models.Ong{ID: ong.ID, Name: "Verde Vivo"}, nil)

	h := handlers.Ong{DB: db, V: validation.New()}
	rr := serve(h.UpdateMyOngHandler, newRequest(http.MethodPut, "/api/ongs/me", `{"name":" Verde Vivo ","website":"https://verdevivo.org"}`, ong, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Verde Vivo", decodeBody[models.Ong](t, rr).Name)
	db.AssertExpectations(t)
}

func TestOng_UpdateMyOngHandlerInvalidWebsite(t *testing.T) {
	h := handlers.Ong{DB: &mocks.OngDatabase{}, V: validation.New()}
	rr := serve(h.UpdateMyOngHandler, newRequest(http.MethodPut, "/api/ongs/me", `{"website":"não é url"}`, principal(models.RoleOng), nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorBody(t, rr).Fields, "website")
}
