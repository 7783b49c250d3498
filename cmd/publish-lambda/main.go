// Command publish-lambda serves the publish endpoint from AWS Lambda behind
// an API Gateway HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	configfile "github.com/custodia-labs/newsroom/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsroom/internal/adapters/driving/api"
	"github.com/custodia-labs/newsroom/internal/app"
	"github.com/custodia-labs/newsroom/internal/logger"
	"github.com/custodia-labs/newsroom/internal/metrics"
)

// chiLambda wraps the router for API Gateway v2 events.
var chiLambda *chiadapter.ChiLambdaV2

func init() {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.SetVerbose(os.Getenv("NEWSROOM_VERBOSE") != "")

	settings, err := configfile.LoadSettings(os.Getenv("NEWSROOM_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	publisher, err := app.NewPublisher(ctx, settings)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}
	collector := metrics.NewCollector()
	publisher.SetMetrics(collector)

	chiLambda = chiadapter.NewV2(api.NewRouter(publisher, collector))
	log.Printf("Lambda cold start completed in %v", time.Since(start))
}

// Handler is the Lambda function handler.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
