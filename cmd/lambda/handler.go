package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"inventory-backend/interfaces/queue"
	"inventory-backend/pkg/common"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const sqsEventSource = "aws:sqs"

// Handler receives every invocation and routes it by event shape: SQS
// batches go to the queue processor, everything else is an API Gateway
// proxy request served by the chi router.
type Handler struct {
	proxy     *chiadapter.ChiLambda
	processor *queue.Processor
	logger    *zap.Logger
}

// NewHandler creates a new Lambda handler
func NewHandler(router *chi.Mux, processor *queue.Processor, logger *zap.Logger) *Handler {
	return &Handler{
		proxy:     chiadapter.New(router),
		processor: processor,
		logger:    logger,
	}
}

// eventProbe reads just enough of an event to tell SQS batches apart
type eventProbe struct {
	Records []struct {
		EventSource string `json:"eventSource"`
	} `json:"Records"`
}

// Handle dispatches one raw invocation
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	if isSQSEvent(raw) {
		return h.handleSQS(ctx, raw)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.logger.Error("Unrecognized event", zap.Error(err))
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to decode API Gateway event: %w", err)
	}

	h.logger.Info("Lambda received request",
		zap.String("source", "apigateway"),
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.String("request_id", req.RequestContext.RequestID),
	)

	return h.proxy.ProxyWithContext(ctx, req)
}

func (h *Handler) handleSQS(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	var event events.SQSEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to decode SQS event: %w", err)
	}

	h.logger.Info("Lambda received request",
		zap.String("source", sqsEventSource),
		zap.Int("records", len(event.Records)),
	)

	h.processor.Process(ctx, event)

	body, err := json.Marshal(common.MessageResponse{Message: "SQS messages processed"})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":           common.ContentTypeJSON,
			common.HeaderAllowOrigin: common.AllowAnyOrigin,
		},
		Body: string(body),
	}, nil
}

func isSQSEvent(raw json.RawMessage) bool {
	var probe eventProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return len(probe.Records) > 0 && probe.Records[0].EventSource == sqsEventSource
}
