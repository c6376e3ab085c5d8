package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/gaffer/internal/app"
	"github.com/okian/gaffer/internal/domain/player"
	"github.com/okian/gaffer/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// stubResolver returns a canned URL per name without any network traffic.
type stubResolver struct {
	mu   sync.Mutex
	urls map[string]string
}

func newStubResolver() *stubResolver {
	return &stubResolver{urls: make(map[string]string)}
}

func (r *stubResolver) Resolve(ctx context.Context, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if url, ok := r.urls[name]; ok {
		return url
	}
	return "https://images.test/placeholder.png"
}

func (r *stubResolver) set(name, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls[name] = url
}

// stubReportClient returns a fixed completion or error.
type stubReportClient struct {
	text string
	err  error
}

func (c *stubReportClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func newTestService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithResolver(newStubResolver()),
		service.WithReportClient(&stubReportClient{text: "ok"}),
		service.WithWorkerCount(2),
		service.WithQueueSize(64),
	}
	return service.New(append(base, opts...)...)
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := newTestService(
			service.WithMaxSessions(16),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newTestService()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And starting twice is harmless", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Sessions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a session is created without a formation", func() {
			view, err := svc.CreateSession(ctx, "")

			Convey("Then it defaults to 4-3-3 with an empty roster", func() {
				So(err, ShouldBeNil)
				So(view.ID, ShouldNotBeEmpty)
				So(view.Formation, ShouldEqual, "4-3-3")
				So(view.SlotCount, ShouldEqual, 11)
				So(view.Roster, ShouldBeEmpty)
			})

			Convey("Then it can be read back", func() {
				got, gerr := svc.GetSession(ctx, view.ID)
				So(gerr, ShouldBeNil)
				So(got.ID, ShouldEqual, view.ID)
			})
		})

		Convey("When a session is created with an explicit formation", func() {
			view, err := svc.CreateSession(ctx, "3-5-2")
			So(err, ShouldBeNil)
			So(view.Formation, ShouldEqual, "3-5-2")
		})

		Convey("When a session is created with an unsupported formation", func() {
			_, err := svc.CreateSession(ctx, "2-3-5")
			So(err, ShouldNotBeNil)
		})

		Convey("When an unknown session is requested", func() {
			_, err := svc.GetSession(ctx, "missing")
			So(err, ShouldWrap, service.ErrNoSuchSession)
		})
	})

	Convey("Given a service with a session cap of one", t, func() {
		svc := newTestService(service.WithMaxSessions(1))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.CreateSession(ctx, "")
		So(err, ShouldBeNil)

		Convey("When a second session is created", func() {
			_, err := svc.CreateSession(ctx, "")

			Convey("Then the cap rejects it", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Roster(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session on a started service", t, func() {
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		session, err := svc.CreateSession(ctx, "")
		So(err, ShouldBeNil)

		Convey("When a stock player is added", func() {
			view, aerr := svc.AddStockPlayer(ctx, session.ID, "Kevin De Bruyne")

			Convey("Then catalog attributes come back with the player", func() {
				So(aerr, ShouldBeNil)
				So(view.Name, ShouldEqual, "Kevin De Bruyne")
				So(view.Passing, ShouldEqual, 96)
				So(view.Provenance, ShouldEqual, "stock")
			})
		})

		Convey("When an unknown stock name is added", func() {
			_, aerr := svc.AddStockPlayer(ctx, session.ID, "Nobody Atall")
			So(aerr, ShouldWrap, player.ErrUnknownPlayer)
		})

		Convey("When a custom player is added", func() {
			view, aerr := svc.AddCustomPlayer(ctx, session.ID, "Jo Tester", player.Attributes{
				Pace: 80, Passing: 75, Stamina: 70, Awareness: 65, Tackling: 60,
			})

			Convey("Then it lands at the end of the roster", func() {
				So(aerr, ShouldBeNil)
				So(view.Provenance, ShouldEqual, "custom")
				got, gerr := svc.GetSession(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster, ShouldHaveLength, 1)
				So(got.Roster[0].ID, ShouldEqual, view.ID)
			})
		})

		Convey("When a custom player has an out-of-range attribute", func() {
			_, aerr := svc.AddCustomPlayer(ctx, session.ID, "Over Clock", player.Attributes{
				Pace: 150, Passing: 75, Stamina: 70, Awareness: 65, Tackling: 60,
			})
			So(aerr, ShouldWrap, player.ErrInvalidAttribute)
		})

		Convey("When the roster already fills every slot", func() {
			for _, name := range player.StockNames()[:11] {
				_, aerr := svc.AddStockPlayer(ctx, session.ID, name)
				So(aerr, ShouldBeNil)
			}

			_, aerr := svc.AddStockPlayer(ctx, session.ID, player.StockNames()[11])

			Convey("Then the twelfth player is rejected", func() {
				So(aerr, ShouldWrap, service.ErrRosterFull)
			})
		})

		Convey("When a player is removed by index", func() {
			first, _ := svc.AddStockPlayer(ctx, session.ID, player.StockNames()[0])
			second, _ := svc.AddStockPlayer(ctx, session.ID, player.StockNames()[1])
			So(svc.RemovePlayer(ctx, session.ID, 0), ShouldBeNil)

			Convey("Then later players shift down one slot", func() {
				got, gerr := svc.GetSession(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster, ShouldHaveLength, 1)
				So(got.Roster[0].ID, ShouldEqual, second.ID)
				So(got.Roster[0].ID, ShouldNotEqual, first.ID)
			})
		})

		Convey("When a player is updated by index", func() {
			_, _ = svc.AddStockPlayer(ctx, session.ID, player.StockNames()[0])
			view, uerr := svc.UpdatePlayer(ctx, session.ID, 0, "Re Placed", player.Attributes{
				Pace: 50, Passing: 50, Stamina: 50, Awareness: 50, Tackling: 50,
			})

			Convey("Then the slot holds the replacement", func() {
				So(uerr, ShouldBeNil)
				got, gerr := svc.GetSession(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster, ShouldHaveLength, 1)
				So(got.Roster[0].ID, ShouldEqual, view.ID)
				So(got.Roster[0].Name, ShouldEqual, "Re Placed")
			})
		})

		Convey("When an out-of-range index is used", func() {
			So(svc.RemovePlayer(ctx, session.ID, 0), ShouldWrap, service.ErrNoSuchPlayer)
			_, uerr := svc.UpdatePlayer(ctx, session.ID, 3, "No Slot", player.Attributes{})
			So(uerr, ShouldWrap, service.ErrNoSuchPlayer)
		})
	})
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session with players", t, func() {
		reportClient := &stubReportClient{text: "Solid defensive block."}
		svc := newTestService(service.WithReportClient(reportClient))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		session, err := svc.CreateSession(ctx, "")
		So(err, ShouldBeNil)
		_, err = svc.AddStockPlayer(ctx, session.ID, "Rodri")
		So(err, ShouldBeNil)

		Convey("When the generation succeeds", func() {
			text, rerr := svc.GenerateReport(ctx, session.ID)

			Convey("Then the completion text comes back verbatim", func() {
				So(rerr, ShouldBeNil)
				So(text, ShouldEqual, "Solid defensive block.")
			})
		})

		Convey("When the generation fails", func() {
			reportClient.err = errors.New("upstream down")
			_, rerr := svc.GenerateReport(ctx, session.ID)

			Convey("Then the failure surfaces as report-unavailable", func() {
				So(rerr, ShouldWrap, service.ErrReportUnavailable)
			})

			Convey("And the session state is unchanged", func() {
				got, gerr := svc.GetSession(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster, ShouldHaveLength, 1)
			})
		})
	})
}

func TestService_AttachImage(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session with one player", t, func() {
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		session, err := svc.CreateSession(ctx, "")
		So(err, ShouldBeNil)
		view, err := svc.AddStockPlayer(ctx, session.ID, "Rodri")
		So(err, ShouldBeNil)

		Convey("When an image arrives for a present player", func() {
			attached, aerr := svc.AttachImage(ctx, session.ID, view.ID, "https://upload.test/rodri.jpg")

			Convey("Then it is attached to the roster entry", func() {
				So(aerr, ShouldBeNil)
				So(attached, ShouldBeTrue)
				got, gerr := svc.GetSession(ctx, session.ID)
				So(gerr, ShouldBeNil)
				So(got.Roster[0].ImageURL, ShouldEqual, "https://upload.test/rodri.jpg")
			})
		})

		Convey("When the player left the roster before the image arrived", func() {
			So(svc.RemovePlayer(ctx, session.ID, 0), ShouldBeNil)
			attached, aerr := svc.AttachImage(ctx, session.ID, view.ID, "https://upload.test/rodri.jpg")

			Convey("Then the result is discarded without error", func() {
				So(aerr, ShouldBeNil)
				So(attached, ShouldBeFalse)
			})
		})

		Convey("When the session itself is gone", func() {
			attached, aerr := svc.AttachImage(ctx, "missing", view.ID, "https://upload.test/rodri.jpg")

			Convey("Then the result is discarded without error", func() {
				So(aerr, ShouldBeNil)
				So(attached, ShouldBeFalse)
			})
		})
	})
}
