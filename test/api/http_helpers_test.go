package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"

	"github.com/google/uuid"
)

type responseAssertion func(*http.Response)

func sendRequest[TReq any, TResp any](
	c *http.Client,
	url string,
	method string,
	playerID uuid.UUID,
	req TReq,
	opts ...responseAssertion,
) (TResp, error) {
	var resp TResp

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}

	httpReq, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return resp, err
	}

	if playerID != uuid.Nil {
		httpReq.Header.Set(core.PlayerIDHeader, playerID.String())
	}

	httpResp, err := c.Do(httpReq)
	if err != nil {
		return resp, err
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	for _, opt := range opts {
		opt(httpResp)
	}

	responsePayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return resp, err
	}

	if len(responsePayload) > 0 && httpResp.StatusCode < 300 {
		if err := json.Unmarshal(responsePayload, &resp); err != nil {
			return resp, err
		}
	}

	return resp, nil
}
