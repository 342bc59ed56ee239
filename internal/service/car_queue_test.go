package service

import (
	"encoding/json"
	"time"

	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/types"
)

func (s *CarServiceSuite) queue() CarQueueService {
	return NewCarQueueService(s.params, s.service)
}

func (s *CarServiceSuite) published() []*car.Car {
	var cars []*car.Car
	for _, msg := range s.pubsub.GetMessages(s.params.Config.Queue.Topic) {
		var c car.Car
		s.Require().NoError(json.Unmarshal(msg.Payload, &c))
		cars = append(cars, &c)
	}
	return cars
}

func (s *CarServiceSuite) actions() []string {
	var actions []string
	for _, msg := range s.pubsub.GetMessages(s.params.Config.Queue.Topic) {
		actions = append(actions, msg.Metadata.Get(types.MetadataKeyAction))
	}
	return actions
}

func (s *CarServiceSuite) TestEnqueueCreateEchoesWithoutPersisting() {
	c := s.newCar("BMW")

	echoed, err := s.queue().EnqueueCreate(s.ctx, c)
	s.Require().NoError(err)
	s.Equal(c, echoed)
	s.Zero(s.store.Writes())
	s.Equal([]string{"POST"}, s.actions())
	s.Equal("BMW", s.published()[0].Brand)
}

func (s *CarServiceSuite) TestEnqueueCreateValidates() {
	_, err := s.queue().EnqueueCreate(s.ctx, s.newCar("B"))
	s.True(ierr.IsValidation(err))
	s.Empty(s.actions())
}

func (s *CarServiceSuite) TestEnqueueUpdateRequiresExistingCar() {
	_, err := s.queue().EnqueueUpdate(s.ctx, 42, s.newCar("Audi"))
	s.True(ierr.IsNotFound(err))
	s.Empty(s.actions())

	created := s.create("BMW")
	echoed, err := s.queue().EnqueueUpdate(s.ctx, created.ID, s.newCar("Audi"))
	s.Require().NoError(err)
	s.Equal(created.ID, echoed.ID)
	s.Equal([]string{"PUT"}, s.actions())
	s.Equal(created.ID, s.published()[0].ID)

	stored, err := s.service.GetCar(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("BMW", stored.Brand)
}

func (s *CarServiceSuite) TestEnqueueDeleteSendsStoredCar() {
	_, err := s.queue().EnqueueDelete(s.ctx, 3)
	s.True(ierr.IsNotFound(err))

	created := s.create("BMW")
	echoed, err := s.queue().EnqueueDelete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, echoed)
	s.Equal([]string{"DELETE"}, s.actions())

	sent := s.published()[0]
	s.Equal(created.ID, sent.ID)
	s.Equal("BMW", sent.Brand)
	s.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sent.Registration.Time)

	_, err = s.service.GetCar(s.ctx, created.ID)
	s.NoError(err)
}
