package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gaffer/internal/adapters/repository"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/player"
)

func newSession() model.Session {
	now := time.Now().UTC()
	return model.Session{
		ID:          uuid.NewString(),
		FormationID: "4-3-3",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-memory session store", t, func() {
		store := repository.NewMemStore()

		Convey("When a session is created", func() {
			session := newSession()
			So(store.Create(ctx, session), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Get(ctx, session.ID)
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, session.ID)
				So(got.FormationID, ShouldEqual, "4-3-3")
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then creating the same id again fails", func() {
				So(store.Create(ctx, session), ShouldWrap, repository.ErrAlreadyExists)
			})
		})

		Convey("When an unknown session is requested", func() {
			_, err := store.Get(ctx, uuid.NewString())
			So(err, ShouldWrap, repository.ErrNotFound)
		})

		Convey("When a session is updated", func() {
			session := newSession()
			So(store.Create(ctx, session), ShouldBeNil)

			p, err := player.NewCustom("Test Player", player.Attributes{Pace: 70, Passing: 70, Stamina: 70, Awareness: 70, Tackling: 70})
			So(err, ShouldBeNil)

			err = store.Update(ctx, session.ID, func(s *model.Session) error {
				s.Roster = append(s.Roster, p)
				return nil
			})
			So(err, ShouldBeNil)

			Convey("Then the mutation is visible on the next read", func() {
				got, gerr := store.Get(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster, ShouldHaveLength, 1)
				So(got.Roster[0].Name, ShouldEqual, "Test Player")
				So(got.UpdatedAt, ShouldHappenOnOrAfter, session.UpdatedAt)
			})
		})

		Convey("When an update callback fails", func() {
			session := newSession()
			So(store.Create(ctx, session), ShouldBeNil)

			boom := fmt.Errorf("roster rejected")
			err := store.Update(ctx, session.ID, func(s *model.Session) error {
				s.FormationID = "3-5-2"
				return boom
			})

			Convey("Then the error passes through and nothing is committed", func() {
				So(err, ShouldEqual, boom)
				got, gerr := store.Get(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.FormationID, ShouldEqual, "4-3-3")
			})
		})

		Convey("When a returned session is mutated by the caller", func() {
			session := newSession()
			p, _ := player.NewCustom("Kept Intact", player.Attributes{Pace: 50, Passing: 50, Stamina: 50, Awareness: 50, Tackling: 50})
			session.Roster = model.Roster{p}
			So(store.Create(ctx, session), ShouldBeNil)

			got, err := store.Get(ctx, session.ID)
			So(err, ShouldBeNil)
			got.Roster[0].Name = "Tampered"

			Convey("Then the stored copy is unaffected", func() {
				again, aerr := store.Get(ctx, session.ID)
				So(aerr, ShouldBeNil)
				So(again.Roster[0].Name, ShouldEqual, "Kept Intact")
			})
		})

		Convey("When the session is deleted", func() {
			session := newSession()
			So(store.Create(ctx, session), ShouldBeNil)
			So(store.Delete(ctx, session.ID), ShouldBeNil)

			Convey("Then it is gone and deleting again is harmless", func() {
				_, err := store.Get(ctx, session.ID)
				So(err, ShouldWrap, repository.ErrNotFound)
				So(store.Delete(ctx, session.ID), ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store with a small capacity", t, func() {
		store := repository.NewMemStore(repository.WithMaxSessions(2))

		So(store.Create(ctx, newSession()), ShouldBeNil)
		So(store.Create(ctx, newSession()), ShouldBeNil)

		Convey("When a third session is created", func() {
			err := store.Create(ctx, newSession())

			Convey("Then the store rejects it", func() {
				So(err, ShouldWrap, repository.ErrTooManySessions)
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestMemStoreConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent updates to one session", t, func() {
		store := repository.NewMemStore()
		session := newSession()
		So(store.Create(ctx, session), ShouldBeNil)

		const writers = 8
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				p, err := player.NewCustom(fmt.Sprintf("Player %d", n), player.Attributes{Pace: 60, Passing: 60, Stamina: 60, Awareness: 60, Tackling: 60})
				if err != nil {
					return
				}
				_ = store.Update(ctx, session.ID, func(s *model.Session) error {
					s.Roster = append(s.Roster, p)
					return nil
				})
			}(i)
		}
		wg.Wait()

		Convey("Then every append survives", func() {
			got, err := store.Get(ctx, session.ID)
			So(err, ShouldBeNil)
			So(got.Roster, ShouldHaveLength, writers)
		})
	})
}
