package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/gaffer/internal/app"
	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/player"
)

// Full session lifecycle: build a squad, switch formations, render the
// pitch, generate a report, and let the image pipeline deliver URLs.
func TestService_FullSquadLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with stubbed outbound adapters", t, func() {
		resolver := newStubResolver()
		resolver.set("Rodri", "https://upload.test/rodri.jpg")
		reportClient := &stubReportClient{text: "Strong midfield control."}

		svc := newTestService(
			service.WithResolver(resolver),
			service.WithReportClient(reportClient),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a full 4-3-3 squad is assembled from the catalog", func() {
			session, err := svc.CreateSession(ctx, "4-3-3")
			So(err, ShouldBeNil)

			names := player.StockNames()[:11]
			for _, name := range names {
				_, aerr := svc.AddStockPlayer(ctx, session.ID, name)
				So(aerr, ShouldBeNil)
			}

			Convey("Then the layout fills every slot in roster order", func() {
				markers, lerr := svc.Layout(ctx, session.ID)
				So(lerr, ShouldBeNil)
				So(markers, ShouldHaveLength, 11)

				slots, serr := formation.SlotsFor("4-3-3")
				So(serr, ShouldBeNil)
				for i, marker := range markers {
					So(marker.Player, ShouldNotBeNil)
					So(marker.Player.Name, ShouldEqual, names[i])
					So(marker.Slot, ShouldEqual, slots[i].Label())
					So(marker.X, ShouldEqual, slots[i].Coordinate.X)
					So(marker.Y, ShouldEqual, slots[i].Coordinate.Y)
				}
			})

			Convey("Then the tactical report returns the completion verbatim", func() {
				text, rerr := svc.GenerateReport(ctx, session.ID)
				So(rerr, ShouldBeNil)
				So(text, ShouldEqual, "Strong midfield control.")
			})

			Convey("Then switching formation keeps the roster order", func() {
				view, serr := svc.SelectFormation(ctx, session.ID, "3-5-2")
				So(serr, ShouldBeNil)
				So(view.Formation, ShouldEqual, "3-5-2")
				So(view.Roster, ShouldHaveLength, 11)
				for i, p := range view.Roster {
					So(p.Name, ShouldEqual, names[i])
				}

				markers, lerr := svc.Layout(ctx, session.ID)
				So(lerr, ShouldBeNil)
				So(markers, ShouldHaveLength, 11)
				So(markers[1].Role, ShouldEqual, string(formation.RoleDefender))
			})

			Convey("Then the image pipeline eventually attaches resolved URLs", func() {
				// Rodri is in the first eleven of the catalog.
				deadline := time.Now().Add(3 * time.Second)
				resolved := false
				for time.Now().Before(deadline) && !resolved {
					got, gerr := svc.GetSession(ctx, session.ID)
					So(gerr, ShouldBeNil)
					for _, p := range got.Roster {
						if p.Name == "Rodri" && p.ImageURL == "https://upload.test/rodri.jpg" {
							resolved = true
							break
						}
					}
					if !resolved {
						time.Sleep(20 * time.Millisecond)
					}
				}
				So(resolved, ShouldBeTrue)
			})

			Convey("Then an empty session still renders eleven empty markers", func() {
				empty, cerr := svc.CreateSession(ctx, "4-4-2")
				So(cerr, ShouldBeNil)

				markers, lerr := svc.Layout(ctx, empty.ID)
				So(lerr, ShouldBeNil)
				So(markers, ShouldHaveLength, 11)
				for _, marker := range markers {
					So(marker.Player, ShouldBeNil)
				}
			})
		})
	})
}
