package transport

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler binds handler to API Gateway proxy events. Netlify Functions
// deliver the same event shape, so both function hosts use it.
func LambdaHandler(handler http.Handler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(evt)
		if err != nil {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error":"Invalid request body","code":"validation_error"}`,
			}, nil
		}

		resp, err := Serve(ctx, handler, req)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return ToAPIGateway(resp), nil
	}
}

func FromAPIGateway(evt events.APIGatewayProxyRequest) (Request, error) {
	body := []byte(evt.Body)
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return Request{}, fmt.Errorf("decode base64 body: %w", err)
		}
		body = decoded
	}

	query := evt.QueryStringParameters
	if len(query) == 0 && len(evt.MultiValueQueryStringParameters) > 0 {
		query = make(map[string]string, len(evt.MultiValueQueryStringParameters))
		for k, v := range evt.MultiValueQueryStringParameters {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}
	}

	return Request{
		Method:  evt.HTTPMethod,
		Path:    evt.Path,
		Headers: evt.Headers,
		Query:   query,
		Body:    body,
	}, nil
}

func ToAPIGateway(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}
