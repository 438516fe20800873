package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/ftracker/pkg/config"
	"github.com/charlie0129/ftracker/pkg/tracker"
	"github.com/charlie0129/ftracker/pkg/types"
)

// Summary asks the daemon to compute the summary of a single package.
func (c *Client) Summary(p tracker.Package) (*types.SummaryResponse, error) {
	ret, err := c.Post("/summary", p)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to compute %s summary", p.Type)
	}

	var resp types.SummaryResponse
	if err := json.Unmarshal(ret, &resp); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal summary")
	}
	return &resp, nil
}

// Report runs packages through the daemon and returns its text report.
func (c *Client) Report(packages []tracker.Package) (string, error) {
	if packages == nil {
		packages = []tracker.Package{}
	}
	ret, err := c.Post("/report", packages)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get report")
	}
	return string(ret), nil
}

func (c *Client) GetWorkouts() ([]types.WorkoutKind, error) {
	ret, err := c.Get("/workouts")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get workouts")
	}

	var kinds []types.WorkoutKind
	if err := json.Unmarshal(ret, &kinds); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal workouts")
	}
	return kinds, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal(ret, &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

// SetConfig updates the fields set in conf and returns the daemon config
// after the update.
func (c *Client) SetConfig(conf *config.RawFileConfig) (*config.RawFileConfig, error) {
	ret, err := c.Put("/config", conf)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to set config")
	}

	var updated config.RawFileConfig
	if err := json.Unmarshal(ret, &updated); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &updated, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal(ret, &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
