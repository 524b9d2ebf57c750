package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// LambdaHandler serves the departures payload behind API Gateway. Screenshots
// are not taken in this mode; the payload is still published.
func (api *DeparturesAPI) LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	api.Logger.Debugf("LambdaHandler %s %s", request.HTTPMethod, request.Path)

	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodGet {
		return &events.APIGatewayProxyResponse{StatusCode: http.StatusMethodNotAllowed}, nil
	}

	if request.Path != "" && request.Path != "/api/departures" {
		return &events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound}, nil
	}

	payload, err := api.Departures(ctx)
	if err != nil {
		api.Logger.Printf("Error fetching data: %s", err)
		return lambdaJSONResponse(http.StatusInternalServerError, model.ErrorResponse{Error: UnableToFetchMessage})
	}

	if api.Publisher != nil {
		if err := api.Publisher.Publish(ctx, payload); err != nil {
			api.Logger.Printf("cannot publish departures: %s", err)
		}
	}

	return lambdaJSONResponse(http.StatusOK, payload)
}

func lambdaJSONResponse(statusCode int, v interface{}) (*events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal JSON response")
	}

	return &events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"content-type": "application/json",
		},
		Body: string(body),
	}, nil
}
