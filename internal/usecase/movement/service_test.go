package movement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainDevice "fleet-device-tracker/internal/domain/device"
	domainMovement "fleet-device-tracker/internal/domain/movement"
	"fleet-device-tracker/internal/domain/refdata"
	appErrors "fleet-device-tracker/pkg/errors"
)

type fakeMovementRepo struct {
	movements map[uuid.UUID]*domainMovement.DeviceMovement
	order     []uuid.UUID
	createErr error
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{movements: make(map[uuid.UUID]*domainMovement.DeviceMovement)}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *domainMovement.DeviceMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.movements[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, movementID uuid.UUID) (*domainMovement.DeviceMovement, error) {
	m, ok := r.movements[movementID]
	if !ok {
		return nil, domainMovement.ErrMovementNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter *domainMovement.Filter) ([]*domainMovement.DeviceMovement, int64, error) {
	var all []*domainMovement.DeviceMovement
	for _, id := range r.order {
		cp := *r.movements[id]
		all = append(all, &cp)
	}
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (r *fakeMovementRepo) ActiveByDevice(_ context.Context, deviceID uuid.UUID) (*domainMovement.DeviceMovement, error) {
	for _, id := range r.order {
		m := r.movements[id]
		if m.DeviceID == deviceID && m.Status == domainMovement.StatusInTransit {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domainMovement.ErrMovementNotFound
}

func (r *fakeMovementRepo) Close(_ context.Context, movementID uuid.UUID, status domainMovement.MovementStatus, receivedAt *time.Time, remarks *string) error {
	m, ok := r.movements[movementID]
	if !ok || m.Status != domainMovement.StatusInTransit {
		return domainMovement.ErrMovementNotFound
	}
	m.Status = status
	m.ReceivedAt = receivedAt
	if remarks != nil {
		m.Remarks = remarks
	}
	m.UpdatedAt = time.Now()
	return nil
}

type fakeDeviceRepo struct {
	devices map[uuid.UUID]*domainDevice.Device
}

func newFakeDeviceRepo(devices ...*domainDevice.Device) *fakeDeviceRepo {
	r := &fakeDeviceRepo{devices: make(map[uuid.UUID]*domainDevice.Device)}
	for _, d := range devices {
		r.devices[d.ID] = d
	}
	return r
}

func (r *fakeDeviceRepo) GetByID(_ context.Context, deviceID uuid.UUID) (*domainDevice.Device, error) {
	d, ok := r.devices[deviceID]
	if !ok {
		return nil, domainDevice.ErrDeviceNotFound
	}
	return d, nil
}

func (r *fakeDeviceRepo) GetByIMEI(_ context.Context, imei string) (*domainDevice.Device, error) {
	for _, d := range r.devices {
		if d.IMEI == imei {
			return d, nil
		}
	}
	return nil, domainDevice.ErrDeviceNotFound
}

func (r *fakeDeviceRepo) UpdateLastSeen(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeRefRepo struct {
	warehouses map[uuid.UUID]*refdata.Warehouse
	engineers  map[uuid.UUID]*refdata.FieldEngineer
	vehicles   map[uuid.UUID]*refdata.Vehicle
}

func newFakeRefRepo() *fakeRefRepo {
	return &fakeRefRepo{
		warehouses: make(map[uuid.UUID]*refdata.Warehouse),
		engineers:  make(map[uuid.UUID]*refdata.FieldEngineer),
		vehicles:   make(map[uuid.UUID]*refdata.Vehicle),
	}
}

func (r *fakeRefRepo) GetWarehouse(_ context.Context, id uuid.UUID) (*refdata.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, refdata.ErrWarehouseNotFound
	}
	return w, nil
}

func (r *fakeRefRepo) GetEngineer(_ context.Context, id uuid.UUID) (*refdata.FieldEngineer, error) {
	e, ok := r.engineers[id]
	if !ok {
		return nil, refdata.ErrEngineerNotFound
	}
	return e, nil
}

func (r *fakeRefRepo) GetVehicle(_ context.Context, id uuid.UUID) (*refdata.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, refdata.ErrVehicleNotFound
	}
	return v, nil
}

type serviceFixture struct {
	service      *Service
	movementRepo *fakeMovementRepo
	deviceRepo   *fakeDeviceRepo
	refRepo      *fakeRefRepo

	device   *domainDevice.Device
	prodWH   *refdata.Warehouse
	fieldWH  *refdata.Warehouse
	engineer *refdata.FieldEngineer
	vehicle  *refdata.Vehicle
}

func newServiceFixture() *serviceFixture {
	device := &domainDevice.Device{
		ID:     uuid.New(),
		IMEI:   "359632107245618",
		Status: domainDevice.StatusActive,
	}

	refRepo := newFakeRefRepo()
	prodWH := &refdata.Warehouse{ID: uuid.New(), Code: "PWH-HAN", IsProduction: true}
	fieldWH := &refdata.Warehouse{ID: uuid.New(), Code: "WH-SGN"}
	engineer := &refdata.FieldEngineer{ID: uuid.New(), Code: "ENG-042"}
	vehicle := &refdata.Vehicle{ID: uuid.New(), RegistrationNumber: "51C-123.45"}
	refRepo.warehouses[prodWH.ID] = prodWH
	refRepo.warehouses[fieldWH.ID] = fieldWH
	refRepo.engineers[engineer.ID] = engineer
	refRepo.vehicles[vehicle.ID] = vehicle

	movementRepo := newFakeMovementRepo()
	deviceRepo := newFakeDeviceRepo(device)

	return &serviceFixture{
		service:      NewService(movementRepo, deviceRepo, refRepo),
		movementRepo: movementRepo,
		deviceRepo:   deviceRepo,
		refRepo:      refRepo,
		device:       device,
		prodWH:       prodWH,
		fieldWH:      fieldWH,
		engineer:     engineer,
		vehicle:      vehicle,
	}
}

func (f *serviceFixture) createRequest() *CreateMovementRequest {
	now := time.Now()
	return &CreateMovementRequest{
		DeviceID:              f.device.ID,
		MovementType:          string(domainMovement.TypeProdToWarehouse),
		FromEntityType:        string(domainMovement.KindProductionWarehouse),
		FromEntityWarehouseID: &f.prodWH.ID,
		ToEntityType:          string(domainMovement.KindWarehouse),
		ToEntityWarehouseID:   &f.fieldWH.ID,
		MovementDate:          &now,
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("creates movement in transit with resolved labels", func(t *testing.T) {
		f := newServiceFixture()

		resp, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		assert.Equal(t, string(domainMovement.StatusInTransit), resp.Status)
		assert.Equal(t, "PWH-HAN", resp.From.Label)
		assert.Equal(t, "WH-SGN", resp.To.Label)
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("rejects second movement while one is in transit", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		_, err = f.service.Create(context.Background(), nil, f.createRequest())
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeStateConflict, appErrors.CodeOf(err))
	})

	t.Run("maps custody conflict surfaced by the store", func(t *testing.T) {
		// A concurrent create can slip past the pre-insert check and lose
		// to the partial unique index instead.
		f := newServiceFixture()
		f.movementRepo.createErr = domainMovement.ErrCustodyConflict

		_, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeStateConflict, appErrors.CodeOf(err))
	})

	t.Run("allows new movement after previous one is received", func(t *testing.T) {
		f := newServiceFixture()

		first, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		_, err = f.service.Receive(context.Background(), first.ID, &ReceiveMovementRequest{})
		require.NoError(t, err)

		req := f.createRequest()
		req.MovementType = string(domainMovement.TypeWarehouseToEng)
		req.FromEntityWarehouseID = &f.fieldWH.ID
		req.ToEntityType = string(domainMovement.KindEngineer)
		req.ToEntityWarehouseID = nil
		req.ToEntityFieldEngineerID = &f.engineer.ID
		req.FromEntityType = string(domainMovement.KindWarehouse)

		_, err = f.service.Create(context.Background(), nil, req)
		assert.NoError(t, err)
	})

	t.Run("rejects unknown device", func(t *testing.T) {
		f := newServiceFixture()

		req := f.createRequest()
		req.DeviceID = uuid.New()

		_, err := f.service.Create(context.Background(), nil, req)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	})

	t.Run("rejects reference field not matching declared kind", func(t *testing.T) {
		f := newServiceFixture()

		req := f.createRequest()
		req.ToEntityWarehouseID = nil
		req.ToEntityVehicleID = &f.vehicle.ID

		_, err := f.service.Create(context.Background(), nil, req)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	})

	t.Run("rejects two populated reference fields on one side", func(t *testing.T) {
		f := newServiceFixture()

		req := f.createRequest()
		req.ToEntityFieldEngineerID = &f.engineer.ID

		_, err := f.service.Create(context.Background(), nil, req)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	})

	t.Run("rejects endpoint missing from reference data", func(t *testing.T) {
		f := newServiceFixture()

		ghost := uuid.New()
		req := f.createRequest()
		req.ToEntityWarehouseID = &ghost

		_, err := f.service.Create(context.Background(), nil, req)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	})

	t.Run("rejects movement type outside the accepted set", func(t *testing.T) {
		f := newServiceFixture()

		req := f.createRequest()
		req.MovementType = "ENGINEER_TO_WH"

		_, err := f.service.Create(context.Background(), nil, req)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	})
}

func TestServiceReceive(t *testing.T) {
	t.Run("marks in transit movement received", func(t *testing.T) {
		f := newServiceFixture()

		created, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		resp, err := f.service.Receive(context.Background(), created.ID, &ReceiveMovementRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(domainMovement.StatusReceived), resp.Status)
		assert.NotNil(t, resp.ReceivedAt)
	})

	t.Run("rejects receiving twice", func(t *testing.T) {
		f := newServiceFixture()

		created, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		_, err = f.service.Receive(context.Background(), created.ID, &ReceiveMovementRequest{})
		require.NoError(t, err)

		_, err = f.service.Receive(context.Background(), created.ID, &ReceiveMovementRequest{})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeStateConflict, appErrors.CodeOf(err))
	})

	t.Run("rejects unknown movement", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.service.Receive(context.Background(), uuid.New(), &ReceiveMovementRequest{})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	})
}

func TestServiceCancel(t *testing.T) {
	t.Run("voids in transit movement", func(t *testing.T) {
		f := newServiceFixture()

		created, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		remarks := "dispatch error"
		resp, err := f.service.Cancel(context.Background(), created.ID, &CancelMovementRequest{Remarks: &remarks})
		require.NoError(t, err)
		assert.Equal(t, string(domainMovement.StatusCancelled), resp.Status)
		assert.Nil(t, resp.ReceivedAt)
	})

	t.Run("rejects cancelling a received movement", func(t *testing.T) {
		f := newServiceFixture()

		created, err := f.service.Create(context.Background(), nil, f.createRequest())
		require.NoError(t, err)

		_, err = f.service.Receive(context.Background(), created.ID, &ReceiveMovementRequest{})
		require.NoError(t, err)

		_, err = f.service.Cancel(context.Background(), created.ID, &CancelMovementRequest{})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeStateConflict, appErrors.CodeOf(err))
	})
}

func TestServiceList(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.Create(context.Background(), nil, f.createRequest())
	require.NoError(t, err)

	resp, err := f.service.List(context.Background(), &MovementFilterRequest{Limit: 10})
	require.NoError(t, err)

	require.Len(t, resp.Movements, 1)
	assert.Equal(t, created.ID, resp.Movements[0].ID)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestServiceListPaginationRoundTrip(t *testing.T) {
	f := newServiceFixture()

	// Seed the repository directly: the custody invariant only constrains
	// IN_TRANSIT movements, so closed history can pile up freely.
	for i := 0; i < 25; i++ {
		err := f.movementRepo.Create(context.Background(), &domainMovement.DeviceMovement{
			DeviceID:     f.device.ID,
			Type:         domainMovement.TypeProdToWarehouse,
			From:         domainMovement.Endpoint{Kind: domainMovement.KindProductionWarehouse, ID: f.prodWH.ID},
			To:           domainMovement.Endpoint{Kind: domainMovement.KindWarehouse, ID: f.fieldWH.ID},
			Status:       domainMovement.StatusReceived,
			MovementDate: time.Now(),
		})
		require.NoError(t, err)
	}

	pageOne, err := f.service.List(context.Background(), &MovementFilterRequest{Offset: 0, Limit: 10})
	require.NoError(t, err)
	pageTwo, err := f.service.List(context.Background(), &MovementFilterRequest{Offset: 10, Limit: 10})
	require.NoError(t, err)
	firstTwenty, err := f.service.List(context.Background(), &MovementFilterRequest{Offset: 0, Limit: 20})
	require.NoError(t, err)

	require.Len(t, pageOne.Movements, 10)
	require.Len(t, pageTwo.Movements, 10)
	require.Len(t, firstTwenty.Movements, 20)

	var paged []uuid.UUID
	for _, m := range append(pageOne.Movements, pageTwo.Movements...) {
		paged = append(paged, m.ID)
	}
	var straight []uuid.UUID
	for _, m := range firstTwenty.Movements {
		straight = append(straight, m.ID)
	}
	assert.Equal(t, straight, paged)

	assert.Equal(t, int64(25), pageOne.Total)
	assert.Equal(t, 3, pageOne.TotalPages)
}

func TestResolveVehicleLabel(t *testing.T) {
	f := newServiceFixture()

	m := &domainMovement.DeviceMovement{
		DeviceID:     f.device.ID,
		Type:         domainMovement.TypeEngineerToVehicle,
		From:         domainMovement.Endpoint{Kind: domainMovement.KindEngineer, ID: f.engineer.ID},
		To:           domainMovement.Endpoint{Kind: domainMovement.KindVehicle, ID: f.vehicle.ID},
		Status:       domainMovement.StatusReceived,
		MovementDate: time.Now(),
	}
	require.NoError(t, f.movementRepo.Create(context.Background(), m))

	resp, err := f.service.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "51C-123.45", resp.To.Label)
	assert.Equal(t, "ENG-042", resp.From.Label)
}

func TestResolveLabelFallsBackToUnknown(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.Create(context.Background(), nil, f.createRequest())
	require.NoError(t, err)

	// Reference record disappears after the movement was recorded.
	delete(f.refRepo.warehouses, f.fieldWH.ID)

	resp, err := f.service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, UnknownLabel, resp.To.Label)
	assert.Equal(t, "PWH-HAN", resp.From.Label)
}
