package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/client"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/modelstore"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

type predictOptions struct {
	nitrogen    float64
	phosphorus  float64
	potassium   float64
	temperature float64
	humidity    float64
	ph          float64
	rainfall    float64
	topK        int
	model       string
	server      string
	timeout     time.Duration
}

func newPredictCommand(a *app) *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Recommend crops for one set of readings",
		Long: `Run a single prediction and print the ranked crops.

Without --server the artifact is loaded locally. With --server the request
is sent to a running model server.`,
		Example: `  krishimitra predict --nitrogen 90 --phosphorus 42 --potassium 43
  krishimitra predict -N 90 -P 42 -K 43 --rainfall 200 --top-k 5 --server http://localhost:8000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out *usecase.PredictOutput
				err error
			)
			if opts.server != "" {
				out, err = predictRemote(cmd.Context(), opts)
			} else {
				out, err = a.predictLocal(cmd.Context(), opts)
			}
			if err != nil {
				return err
			}
			return renderPredictions(cmd.OutOrStdout(), out.Predictions, out.Probabilities)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&opts.nitrogen, "nitrogen", "N", 0, "nitrogen content")
	f.Float64VarP(&opts.phosphorus, "phosphorus", "P", 0, "phosphorus content")
	f.Float64VarP(&opts.potassium, "potassium", "K", 0, "potassium content")
	f.Float64Var(&opts.temperature, "temperature", usecase.DefaultTemperature, "temperature in celsius")
	f.Float64Var(&opts.humidity, "humidity", usecase.DefaultHumidity, "relative humidity")
	f.Float64Var(&opts.ph, "ph", usecase.DefaultPH, "soil pH")
	f.Float64Var(&opts.rainfall, "rainfall", usecase.DefaultRainfall, "rainfall in mm")
	f.IntVar(&opts.topK, "top-k", usecase.DefaultTopK, "number of crops to list")
	f.StringVar(&opts.model, "model", "", "artifact path (defaults to the configured pipeline path)")
	f.StringVar(&opts.server, "server", "", "model server base URL")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout for --server")

	_ = cmd.MarkFlagRequired("nitrogen")
	_ = cmd.MarkFlagRequired("phosphorus")
	_ = cmd.MarkFlagRequired("potassium")

	return cmd
}

func (o *predictOptions) input() *usecase.PredictInput {
	in := usecase.NewPredictInput()
	in.Nitrogen = &o.nitrogen
	in.Phosphorus = &o.phosphorus
	in.Potassium = &o.potassium
	in.Temperature = &o.temperature
	in.Humidity = &o.humidity
	in.PH = &o.ph
	in.Rainfall = &o.rainfall
	in.TopK = &o.topK
	return in
}

func (a *app) predictLocal(ctx context.Context, opts *predictOptions) (*usecase.PredictOutput, error) {
	path := opts.model
	if path == "" {
		path = a.cfg.Pipeline.Path
	}

	log := zap.NewNop()
	registry := modelstore.NewRegistry(path, modelstore.NewLoader(nil, log), log)
	if _, err := registry.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	uc := usecase.NewPredictionUsecase(registry, nil, 0, log)
	return uc.Predict(ctx, opts.input())
}

func predictRemote(ctx context.Context, opts *predictOptions) (*usecase.PredictOutput, error) {
	in := opts.input()
	features := in.Features()

	mc := client.NewModelClient(opts.server, opts.timeout)
	resp, err := mc.Predict(ctx, &client.PredictRequest{
		Nitrogen:    features.Nitrogen,
		Phosphorus:  features.Phosphorus,
		Potassium:   features.Potassium,
		Temperature: features.Temperature,
		Humidity:    features.Humidity,
		PH:          features.PH,
		Rainfall:    features.Rainfall,
		TopK:        in.K(),
	})
	if err != nil {
		return nil, err
	}

	return &usecase.PredictOutput{
		Predictions:   resp.Predictions,
		Probabilities: resp.Probabilities,
		RawOutput:     resp.RawOutput,
	}, nil
}

// renderPredictions writes a ranked table. Probabilities may be shorter than
// predictions when the model only reports a label.
func renderPredictions(w io.Writer, predictions []string, probabilities []float64) error {
	if len(predictions) == 0 {
		_, err := fmt.Fprintln(w, "No predictions.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Crop", "Probability"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, crop := range predictions {
		prob := "-"
		if i < len(probabilities) {
			prob = strconv.FormatFloat(probabilities[i], 'f', 4, 64)
		}
		table.Append([]string{strconv.Itoa(i + 1), crop, prob})
	}

	table.Render()
	return nil
}
