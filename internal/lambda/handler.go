// Package lambda adapts the refresh pipeline to API Gateway proxy events.
package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"ynabviz/internal/log"
	"ynabviz/internal/services"
)

// Refresher runs one refresh and returns the response to send.
type Refresher interface {
	Handle(ctx context.Context) services.Response
}

// Handler is the function registered with lambda.Start. Any payload is
// accepted, including scheduled events and non-object JSON.
type Handler func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error)

// NewHandler wraps a refresher. The event content is ignored: every
// invocation triggers a refresh. An API Gateway event only contributes log
// fields. Failures are reported through the status code, never as a
// Lambda error.
func NewHandler(refresher Refresher, logger *log.Logger) Handler {
	if logger == nil {
		logger = log.NewDiscard()
	}
	logger = logger.WithComponent(log.ComponentLambda)

	return func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
		var req events.APIGatewayProxyRequest
		_ = json.Unmarshal(payload, &req)

		reqLogger := logger
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			reqLogger = reqLogger.With(log.FieldRequestID, lc.AwsRequestID)
		}
		reqLogger.InfoContext(ctx, "Lambda execution started",
			log.FieldMethod, req.HTTPMethod,
			log.FieldPath, req.Path,
			"source_request_id", req.RequestContext.RequestID)

		resp := refresher.Handle(log.NewContext(ctx, reqLogger))
		body, err := resp.JSON()
		if err != nil {
			reqLogger.ErrorContext(ctx, "Failed to encode response", log.FieldError, err.Error())
			resp = services.ErrorResponse(err)
			body, _ = resp.JSON()
		}

		outcome := "completed"
		if resp.StatusCode >= http.StatusInternalServerError {
			outcome = "failed"
		}
		reqLogger.InfoContext(ctx, "Lambda execution "+outcome, log.FieldStatusCode, resp.StatusCode)

		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers(),
			Body:       string(body),
		}, nil
	}
}
