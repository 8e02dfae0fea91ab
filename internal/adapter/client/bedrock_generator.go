package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/service"
)

// DefaultBedrockModel is used when no Bedrock model id is configured
const DefaultBedrockModel = "us.amazon.nova-lite-v1:0"

// converser is the part of the Bedrock runtime client used here
type converser interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockGenerator adapts Bedrock Converse to the TextGenerator interface
type BedrockGenerator struct {
	client  converser
	modelID string
}

// NewBedrockGenerator loads the default AWS config for region
func NewBedrockGenerator(ctx context.Context, region, modelID string) (service.TextGenerator, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newBedrockGenerator(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

func newBedrockGenerator(client converser, modelID string) *BedrockGenerator {
	if modelID == "" || strings.HasPrefix(modelID, "gemini") {
		modelID = DefaultBedrockModel
	}
	return &BedrockGenerator{client: client, modelID: modelID}
}

// Name implements TextGenerator
func (g *BedrockGenerator) Name() string { return "bedrock" }

// Generate sends the prompt as a single user message
func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
	}

	response, err := g.client.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("bedrock converse failed: %w", err)
	}
	return converseText(response)
}

func converseText(response *bedrockruntime.ConverseOutput) (string, error) {
	msg, ok := response.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("bedrock returned no message")
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return b.String(), nil
}
