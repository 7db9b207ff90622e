package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/urfave/cli/v3"
)

// apiClient returns the raw client, authorized as the signed-in user when there is one.
func (r *Runner) apiClient() *services.APIService {
	api := r.api
	if api == nil {
		api = services.NewAPIService(r.config.API.BaseURL, r.httpClient)
	}
	if r.tabs != nil {
		if user := r.tabs.User(); user != nil && user.Authenticated() {
			return api.WithToken(user.SessionJWT)
		}
	}
	return api
}

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	useJSON := cmd.Bool("json")

	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.apiClient().Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !useJSON)
	}

	return r.writeBody(resp.Body)
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	r.logger.Info("POST request", "path", path)

	if !json.Valid([]byte(data)) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	resp, err := r.apiClient().Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	return r.writeBody(resp.Body)
}

func (r *Runner) writeBody(body []byte) error {
	if _, err := r.output.Write(body); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}
