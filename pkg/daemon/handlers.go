package daemon

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/ftracker/pkg/config"
	"github.com/charlie0129/ftracker/pkg/events"
	"github.com/charlie0129/ftracker/pkg/tracker"
	"github.com/charlie0129/ftracker/pkg/training"
	"github.com/charlie0129/ftracker/pkg/types"
	"github.com/charlie0129/ftracker/pkg/version"
)

// observer records metrics and publishes an event for each processed package.
func (s *server) observer(requestID string) tracker.Observer {
	return func(p tracker.Package, info training.InfoMessage, err error) {
		now := time.Now()
		if err != nil {
			recordFailure(err)
			s.hub.Publish(events.TrainingFailure, events.TrainingFailureEvent{
				RequestID: requestID,
				Type:      p.Type,
				Message:   tracker.ErrorMessage(err),
				Ts:        now.Unix(),
			})
			return
		}

		recordSummary(info, now)
		s.hub.Publish(events.TrainingSummary, events.TrainingSummaryEvent{
			RequestID:    requestID,
			TrainingType: info.TrainingType,
			Duration:     info.Duration,
			Distance:     info.Distance,
			Speed:        info.Speed,
			Calories:     info.Calories,
			Ts:           now.Unix(),
		})
	}
}

func (s *server) getWorkouts(c *gin.Context) {
	kinds := training.Kinds()
	resp := make([]types.WorkoutKind, 0, len(kinds))
	for _, k := range kinds {
		resp = append(resp, types.WorkoutKind{
			Code:   string(k.Code),
			Name:   k.Name,
			Params: k.Params,
		})
	}
	c.IndentedJSON(http.StatusOK, resp)
}

func (s *server) postSummary(c *gin.Context) {
	var p tracker.Package
	if err := c.ShouldBindJSON(&p); err != nil {
		c.IndentedJSON(http.StatusBadRequest, types.ErrorResponse{Error: tracker.MsgInvalidParams})
		_ = c.Error(err)
		return
	}

	id := c.GetString(requestIDKey)
	r := tracker.NewRunner(io.Discard, tracker.WithObserver(s.observer(id)))
	info, err := r.Process(p)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, training.ErrSensorFault) {
			status = http.StatusUnprocessableEntity
		}
		c.IndentedJSON(status, types.ErrorResponse{Error: tracker.ErrorMessage(err)})
		_ = c.Error(err)
		return
	}

	c.IndentedJSON(http.StatusOK, types.SummaryResponse{
		InfoMessage: info,
		Message:     info.Message(),
		RequestID:   id,
	})
}

func (s *server) postReport(c *gin.Context) {
	var packages []tracker.Package
	if err := c.ShouldBindJSON(&packages); err != nil {
		c.IndentedJSON(http.StatusBadRequest, types.ErrorResponse{Error: tracker.MsgInvalidParams})
		_ = c.Error(err)
		return
	}

	var buf bytes.Buffer
	r := tracker.NewRunner(&buf, tracker.WithObserver(s.observer(c.GetString(requestIDKey))))
	if err := r.Run(packages); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.String(http.StatusOK, buf.String())
}

func (s *server) getEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	logrus.WithField("subscribers", s.hub.Subscribers()).Debug("new event subscriber")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *server) getConfig(c *gin.Context) {
	s.getConfigWithStatus(c, http.StatusOK)
}

func (s *server) getConfigWithStatus(c *gin.Context, status int) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(status, fc)
}

// setConfig applies the fields present in the request body and persists the
// result. A new listenAddress takes effect on the next daemon start.
func (s *server) setConfig(c *gin.Context) {
	var req config.RawFileConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if req.Packages != nil {
		s.conf.SetPackages(req.Packages)
	}
	if req.ColorOutput != nil {
		s.conf.SetColorOutput(*req.ColorOutput)
	}
	if req.ListenAddress != nil {
		s.conf.SetListenAddress(*req.ListenAddress)
	}
	if req.MetricsEnabled != nil {
		s.conf.SetMetricsEnabled(*req.MetricsEnabled)
	}

	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.WithFields(s.conf.LogrusFields()).Info("config updated")

	s.getConfigWithStatus(c, http.StatusCreated)
}

func (s *server) getMetrics(c *gin.Context) {
	if !s.conf.MetricsEnabled() {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	metricsHandler().ServeHTTP(c.Writer, c.Request)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
