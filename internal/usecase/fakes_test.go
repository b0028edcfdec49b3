package usecase

import (
	"context"
	"errors"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// fakeReservationRepo serves canned records per field/value and can be
// forced to fail. onFind, when set, runs before each query; the stale
// resolution tests use it to flip the identity mid-lookup.
type fakeReservationRepo struct {
	records map[entity.KeyField]map[string][]*entity.Reservation
	err     error
	onFind  func()
	queries []entity.LookupKey
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		records: map[entity.KeyField]map[string][]*entity.Reservation{
			entity.KeyEmail: {},
			entity.KeyPhone: {},
		},
	}
}

func (f *fakeReservationRepo) add(field entity.KeyField, value string, record *entity.Reservation) {
	f.records[field][value] = append(f.records[field][value], record)
}

func (f *fakeReservationRepo) FindByField(ctx context.Context, field entity.KeyField, value string) ([]*entity.Reservation, error) {
	if f.onFind != nil {
		f.onFind()
	}
	f.queries = append(f.queries, entity.LookupKey{Field: field, Value: value})
	if f.err != nil {
		return nil, f.err
	}
	return f.records[field][value], nil
}

// fakeProvider records sign-out calls
type fakeProvider struct {
	signOuts   []*entity.Identity
	signOutErr error
}

func (f *fakeProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.Identity, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) SendPhoneCode(ctx context.Context, phoneNumber string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeProvider) VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.Identity, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) SignOut(ctx context.Context, identity *entity.Identity) error {
	f.signOuts = append(f.signOuts, identity)
	return f.signOutErr
}

// fakeFlightInfo records submissions and can be forced to fail
type fakeFlightInfo struct {
	submissions []*entity.FlightSubmission
	err         error
}

func (f *fakeFlightInfo) Submit(ctx context.Context, submission *entity.FlightSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.submissions = append(f.submissions, submission)
	return nil
}

// fakeAirlines maps codes to names
type fakeAirlines struct {
	byCode map[string]string
}

func (f *fakeAirlines) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if name, ok := f.byCode[code]; ok {
		return &entity.Airline{Code: code, Name: name}, nil
	}
	return nil, errors.New("record not found")
}

// fakeTimezones maps cities and airport codes to IANA zone names
type fakeTimezones struct {
	byCity    map[string]string
	byAirport map[string]string
}

func (f *fakeTimezones) GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error) {
	if tz, ok := f.byAirport[code]; ok {
		return &entity.Timezone{AirportCode: code, TzName: tz}, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeTimezones) GetByCity(ctx context.Context, city string) (*entity.Timezone, error) {
	if tz, ok := f.byCity[city]; ok {
		return &entity.Timezone{CityName: city, TzName: tz}, nil
	}
	return nil, errors.New("record not found")
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetricsWith(prometheus.NewRegistry(), "test")
}
