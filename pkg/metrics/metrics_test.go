package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When a manager is created against it", func() {
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("test"),
				WithSubsystem("engine"),
			)

			Convey("Then it registers its collectors without panicking", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When the record helpers run", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordDebateCreated()
					RecordDebateStarted()
					RecordDebateCompleted()
					RecordDebateCancelled()
					RecordJudgmentRejected("validation")
					RecordJudgmentDuplicate()
					RecordCommitConflict()
					RecordCommitRetry()
					RecordRatingDelta(14)
					RecordAchievementUnlocked("first_win")
					RecordLeaderboardRebuild(2.5)
					UpdateLeaderboardSize(3)
					UpdateTotalUsers(3)
					UpdateQueueSize(1)
					UpdateQueueCapacity(100)
					UpdateQueueUtilization(0.01)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueEnqueueError()
					UpdateWorkerCount(2)
					RecordWorkerProcessingLatency(1.0)
					RecordWorkerError()
					RecordHTTPRequest("leaderboard", "GET", "200")
					RecordHTTPRequestDuration("leaderboard", "GET", "200", 1.2)
					RecordRateLimited("judgment")
					RecordStoreUpdateLatency(0.4)
					RecordStoreConflict()
					UpdateStoreDocuments(10)
				}, ShouldNotPanic)
			})
		})

		Convey("Then the registry serves the recorded families", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
