// Batch prediction entry point: scores a featurized CSV with a saved model
// bundle and re-emits the rows with a predicted_is_high_risk column.
package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
	storage "github.com/CreditScope/CreditScope-Go/pipelines/Storage"
	"github.com/CreditScope/CreditScope-Go/utils"
)

func main() {
	modelPath := flag.String("model", "models/credit_risk_model.json", "model bundle to score with")
	dataPath := flag.String("data", "", "featurized input CSV")
	outPath := flag.String("out", "predictions.csv", "output CSV path")
	flag.Parse()

	logger := utils.GetLogger()

	if *dataPath == "" {
		logger.Error("no input data", nil, utils.Component("predict"))
		flag.Usage()
		os.Exit(1)
	}

	bundle, err := storage.LoadBundle(*modelPath)
	if err != nil {
		logger.Error("failed to load model bundle", err, utils.Component("predict"))
		os.Exit(1)
	}
	model, err := bundle.Classifier()
	if err != nil {
		logger.Error("bundle is not servable", err, utils.Component("predict"))
		os.Exit(1)
	}

	header, records, err := ml.LoadFeatureCSV(*dataPath)
	if err != nil {
		logger.Error("failed to load input data", err, utils.Component("predict"))
		os.Exit(1)
	}

	// Columns are matched to the bundle schema by name; CustomerId is kept
	// in the output but never fed to the model.
	X, err := ml.MatrixFromRecords(header, records, bundle.FeatureNames)
	if err != nil {
		logger.Error("input data does not match the model schema", err, utils.Component("predict"))
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Error("failed to create output file", err, utils.Component("predict"))
		os.Exit(1)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(append(append([]string{}, header...), "predicted_is_high_risk")); err != nil {
		logger.Error("failed to write output header", err, utils.Component("predict"))
		os.Exit(1)
	}
	positives := 0
	for i, record := range records {
		prediction := model.Predict(X[i])
		positives += prediction
		row := append(append([]string{}, record...), strconv.Itoa(prediction))
		if err := writer.Write(row); err != nil {
			logger.Error("failed to write output row", err, utils.Component("predict"))
			os.Exit(1)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error("failed to flush output", err, utils.Component("predict"))
		os.Exit(1)
	}

	logger.Info("batch prediction finished",
		utils.Component("predict"),
		utils.String("model_id", bundle.ID),
		utils.String("out", *outPath),
		utils.Int("rows", len(records)),
		utils.Int("flagged_high_risk", positives))
}
