package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/databases/mocks"
	"github.com/conectaong/voluntariado-api/models"
)

func TestOngDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelperErr := &mocks.SingleResultHelper{}
	srHelperCorrect := &mocks.SingleResultHelper{}

	srHelperErr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	srHelperCorrect.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Ong)
		(*arg).Name = "Instituto Esperança"
	})

	collectionHelper.On("FindOne", context.Background(), bson.M{"error": true}).Return(srHelperErr)
	collectionHelper.On("FindOne", context.Background(), bson.M{"error": false}).Return(srHelperCorrect)
	dbHelper.On("Collection", "ongs").Return(collectionHelper)

	ongDba := databases.NewOngDatabase(dbHelper)

	ong, err := ongDba.FindOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, ong)
	assert.EqualError(t, err, "mocked-error")

	ong, err = ongDba.FindOne(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
	assert.Equal(t, "Instituto Esperança", ong.Name)
}

func TestVolunteerDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Volunteer)
		(*arg).Email = "ana@example.com"
	})
	collectionHelper.On("FindOne", context.Background(), bson.M{"email": "ana@example.com"}).Return(srHelper)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	volunteer, err := databases.NewVolunteerDatabase(dbHelper).FindOne(context.Background(), bson.M{"email": "ana@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", volunteer.Email)
}
