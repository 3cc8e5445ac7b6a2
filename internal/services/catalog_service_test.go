package services_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"testing"

	"lmcmotors/internal/models"
	"lmcmotors/internal/repositories"
	"lmcmotors/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// FailingVehicleRepository is a mock implementation of
// repositories.VehicleRepository used to exercise storage-failure paths.
type FailingVehicleRepository struct {
	mock.Mock
}

func (m *FailingVehicleRepository) GetAll() ([]repositories.VehicleDocument, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.VehicleDocument), args.Error(1)
}

func (m *FailingVehicleRepository) GetByID(id string) (*repositories.VehicleDocument, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.VehicleDocument), args.Error(1)
}

func (m *FailingVehicleRepository) Create(doc *repositories.VehicleDocument) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *FailingVehicleRepository) Save(doc *repositories.VehicleDocument) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *FailingVehicleRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain suppresses service logging for cleaner test output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func sedan(make, model string, price float64) models.VehicleData {
	return models.VehicleData{
		Make: make, Model: model, Year: 2021, Price: price, Mileage: 30000,
		Description: "test vehicle", Type: models.TypeSedan,
	}
}

func seedCatalog(t *testing.T) *services.CatalogService {
	t.Helper()
	service := services.NewCatalogService(repositories.NewMockVehicleRepository())

	seeds := []models.VehicleData{
		{Make: "Honda", Model: "CR-V", Year: 2022, Price: 20000, Mileage: 15000, Type: models.TypeSUV},
		{Make: "Toyota", Model: "Camry", Year: 2021, Price: 30000, Mileage: 28000, Type: models.TypeSedan},
		{Make: "Ford", Model: "F-150", Year: 2020, Price: 60000, Mileage: 41000, Type: models.TypeTruck},
	}
	for _, data := range seeds {
		_, err := service.Create(data)
		require.NoError(t, err)
	}
	return service
}

func TestCatalogService_CreateAssignsNextID(t *testing.T) {
	repo := repositories.NewMockVehicleRepository()
	service := services.NewCatalogService(repo)

	// Empty catalog starts at 1.
	first, err := service.Create(sedan("Toyota", "Camry", 24500))
	assert.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := service.Create(sedan("Honda", "Accord", 26000))
	assert.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	// A gap in the keys does not matter; the next id is max + 1.
	body, _ := json.Marshal(sedan("Mazda", "6", 21000))
	require.NoError(t, repo.Create(&repositories.VehicleDocument{ID: "9", Data: body}))

	third, err := service.Create(sedan("Kia", "K5", 23000))
	assert.NoError(t, err)
	assert.Equal(t, 10, third.ID)
}

func TestCatalogService_CreateThenGetByID(t *testing.T) {
	service := services.NewCatalogService(repositories.NewMockVehicleRepository())

	data := models.VehicleData{
		Make: "Ford", Model: "F-150", Year: 2020, Price: 38900, Mileage: 41000,
		Description: "work truck", Type: models.TypeTruck,
		Images:         []string{"culture-1"},
		Specifications: []models.Specification{{Name: "Engine", Value: "3.5L V6"}},
	}
	created, err := service.Create(data)
	require.NoError(t, err)

	got, err := service.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, data.Make, got.Make)
	assert.Equal(t, data.Price, got.Price)
	assert.Equal(t, data.Images, got.Images)
	assert.Equal(t, data.Specifications, got.Specifications)
}

func TestCatalogService_GetByIDNotFound(t *testing.T) {
	service := services.NewCatalogService(repositories.NewMockVehicleRepository())

	_, err := service.GetByID(99)
	assert.ErrorIs(t, err, repositories.ErrVehicleNotFound)
}

func TestCatalogService_ListTypeFilter(t *testing.T) {
	service := seedCatalog(t)

	vehicles, err := service.List(&services.VehicleFilter{Type: "SUV"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, models.TypeSUV, vehicles[0].Type)

	// "all" and empty disable the filter.
	vehicles, err = service.List(&services.VehicleFilter{Type: "all"})
	require.NoError(t, err)
	assert.Len(t, vehicles, 3)

	// The type match is exact; the finder's lower-cased values do not match
	// the catalog enum here.
	vehicles, err = service.List(&services.VehicleFilter{Type: "suv"})
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestCatalogService_ListPriceBand(t *testing.T) {
	service := seedCatalog(t)

	vehicles, err := service.List(&services.VehicleFilter{Price: "0-25000"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, float64(20000), vehicles[0].Price)

	// Open-ended band.
	vehicles, err = service.List(&services.VehicleFilter{Price: "50000-"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, float64(60000), vehicles[0].Price)

	// Band boundaries are inclusive.
	vehicles, err = service.List(&services.VehicleFilter{Price: "20000-30000"})
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)

	_, err = service.List(&services.VehicleFilter{Price: "cheap"})
	assert.Error(t, err)
}

func TestCatalogService_UpdateMergesPartial(t *testing.T) {
	service := services.NewCatalogService(repositories.NewMockVehicleRepository())

	created, err := service.Create(sedan("Toyota", "Camry", 24500))
	require.NoError(t, err)

	updated, err := service.Update(created.ID, map[string]interface{}{
		"price":       22900.0,
		"description": "price reduced",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 22900.0, updated.Price)
	assert.Equal(t, "price reduced", updated.Description)
	// Untouched fields survive the merge.
	assert.Equal(t, "Toyota", updated.Make)
	assert.Equal(t, 2021, updated.Year)

	_, err = service.Update(99, map[string]interface{}{"price": 1.0})
	assert.ErrorIs(t, err, repositories.ErrVehicleNotFound)
}

func TestCatalogService_DeleteNotFound(t *testing.T) {
	service := services.NewCatalogService(repositories.NewMockVehicleRepository())

	created, err := service.Create(sedan("Toyota", "Camry", 24500))
	require.NoError(t, err)

	assert.NoError(t, service.Delete(created.ID))
	assert.ErrorIs(t, service.Delete(created.ID), repositories.ErrVehicleNotFound)
	assert.ErrorIs(t, service.Delete(12345), repositories.ErrVehicleNotFound)
}

func TestCatalogService_ListAllIDs(t *testing.T) {
	service := seedCatalog(t)

	ids, err := service.ListAllIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestCatalogService_Featured(t *testing.T) {
	service := seedCatalog(t)

	vehicles, err := service.Featured(2)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, 1, vehicles[0].ID)
	assert.Equal(t, 2, vehicles[1].ID)
}

func TestCatalogService_StorageErrorIsDistinguishable(t *testing.T) {
	mockRepo := new(FailingVehicleRepository)
	service := services.NewCatalogService(mockRepo)

	mockRepo.On("GetAll").Return(nil, fmt.Errorf("connection reset")).Once()

	// A storage failure must not masquerade as an empty catalog.
	vehicles, err := service.List(nil)
	assert.Error(t, err)
	assert.Nil(t, vehicles)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Inventory(t *testing.T) {
	service := seedCatalog(t)

	// The inventory lookup matches types case-insensitively, so the
	// finder's "sedan" finds the catalog's "Sedan".
	items, err := service.Inventory("sedan")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Toyota", items[0].Make)
	assert.Equal(t, "Sedan", items[0].Type)
	assert.Equal(t, strconv.Itoa(items[0].ID), "2")

	items, err = service.Inventory("")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
