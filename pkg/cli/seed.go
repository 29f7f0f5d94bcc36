package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/cli/config"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
	"github.com/pathlight-lab/pathlight/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var filePath string
	var bucket string
	var object string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "Path to a local JSON file containing an array of opportunities",
			Sources:     cli.EnvVars("PATHLIGHT_SEED_FILE"),
			Destination: &filePath,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket holding the seed object",
			Sources:     cli.EnvVars("PATHLIGHT_SEED_BUCKET"),
			Destination: &bucket,
		},
		&cli.StringFlag{
			Name:        "object",
			Usage:       "Cloud Storage object path of the seed JSON",
			Sources:     cli.EnvVars("PATHLIGHT_SEED_OBJECT"),
			Destination: &object,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load opportunity records into the repository from a JSON file or Cloud Storage object",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			reader, err := openSeedSource(ctx, filePath, bucket, object)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, reader)

			var opportunities []*model.Opportunity
			if err := json.NewDecoder(reader).Decode(&opportunities); err != nil {
				return goerr.Wrap(err, "failed to decode seed data")
			}
			if len(opportunities) == 0 {
				logger.Warn("Seed source contained no opportunities")
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			for _, opp := range opportunities {
				if opp.Title == "" {
					return goerr.New("opportunity title is required", goerr.V("id", opp.ID))
				}
				saved, err := repo.Opportunity().Put(ctx, opp)
				if err != nil {
					return goerr.Wrap(err, "failed to store opportunity", goerr.V("title", opp.Title))
				}
				logger.Debug("Stored opportunity", "id", saved.ID, "title", saved.Title)
			}

			logger.Info("Seed completed", "count", len(opportunities))
			return nil
		},
	}
}

// openSeedSource returns a reader for the seed data, from a local file or
// a Cloud Storage object. Exactly one source must be given.
func openSeedSource(ctx context.Context, filePath, bucket, object string) (io.ReadCloser, error) {
	switch {
	case filePath != "" && bucket != "":
		return nil, goerr.New("specify either --file or --bucket, not both")

	case filePath != "":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open seed file", goerr.V("path", filePath))
		}
		return f, nil

	case bucket != "":
		if object == "" {
			return nil, goerr.New("--object is required with --bucket")
		}
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create storage client")
		}
		reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			safe.Close(ctx, client)
			return nil, goerr.Wrap(err, "failed to open storage object",
				goerr.V("bucket", bucket),
				goerr.V("object", object),
			)
		}
		return &storageReader{client: client, reader: reader}, nil

	default:
		return nil, goerr.New("either --file or --bucket is required")
	}
}

// storageReader closes the storage client together with the object reader.
type storageReader struct {
	client *storage.Client
	reader *storage.Reader
}

func (r *storageReader) Read(p []byte) (int, error) { return r.reader.Read(p) }

func (r *storageReader) Close() error {
	rErr := r.reader.Close()
	cErr := r.client.Close()
	if rErr != nil {
		return rErr
	}
	return cErr
}
