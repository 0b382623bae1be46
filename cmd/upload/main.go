package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/client"
	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/media"
	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/pipeline"
	"github.com/lucasbecker/upload-ai/services/prompt"
	"github.com/lucasbecker/upload-ai/textutil"
)

type CLI struct {
	Server string `help:"API base URL." default:"http://localhost:8080"`
	Quiet  bool   `help:"Only print results." short:"q"`

	Run      RunCmd      `cmd:"" help:"Extract audio from a video, upload it and transcribe it."`
	Prompts  PromptsCmd  `cmd:"" help:"List the prompt templates."`
	Complete CompleteCmd `cmd:"" help:"Stream an AI completion for a filled template."`
}

type RunCmd struct {
	Video string `arg:"" type:"existingfile" help:"Source video file."`
	Hint  string `help:"Vocabulary hint for the transcription (comma-separated keywords)."`
}

func (r *RunCmd) Run(cli *CLI) error {
	api := client.New(cli.Server)

	var lastStatus pipeline.Status
	notify := func(s pipeline.Snapshot) {
		if cli.Quiet || s.Status == lastStatus {
			return
		}
		lastStatus = s.Status
		fmt.Fprintf(os.Stderr, "-> %s\n", s.Status)
	}

	ctrl := pipeline.NewController(media.Shared(), api, api, pipeline.WithNotify(notify))

	ctx := context.Background()
	ctrl.SelectFile(ctx, r.Video)

	snap := ctrl.Submit(ctx, r.Hint)
	if snap.Status != pipeline.StatusSuccess {
		return fmt.Errorf("pipeline failed: %w", snap.Err)
	}

	if !cli.Quiet {
		fmt.Fprintf(os.Stderr, "video id: %s\n", snap.VideoID)
	}
	fmt.Println(snap.Transcription)
	return nil
}

type PromptsCmd struct{}

func (p *PromptsCmd) Run(cli *CLI) error {
	prompts, err := client.New(cli.Server).Prompts(context.Background())
	if err != nil {
		return err
	}

	for _, item := range prompts {
		fmt.Printf("%s\t%s\t%s\n", item.ID, item.Title, textutil.Excerpt(item.Template, 1))
	}
	return nil
}

type CompleteCmd struct {
	TemplateID        string  `required:"" help:"Prompt template id (see 'upload prompts')."`
	Transcription     string  `help:"Transcription text substituted into the template." xor:"source"`
	TranscriptionFile string  `type:"existingfile" help:"File holding the transcription text." xor:"source"`
	VideoID           string  `help:"Video id to attach, informational only."`
	Temperature       float32 `default:"0.5" help:"Sampling temperature in [0,1]."`
}

func (c *CompleteCmd) Run(cli *CLI) error {
	ctx := context.Background()
	api := client.New(cli.Server)

	tpl, err := api.Prompt(ctx, c.TemplateID)
	if errors.IsNotFound(err) {
		return fmt.Errorf("unknown template id: %s", c.TemplateID)
	}
	if err != nil {
		return err
	}

	transcription := c.Transcription
	if c.TranscriptionFile != "" {
		data, err := os.ReadFile(c.TranscriptionFile)
		if err != nil {
			return err
		}
		transcription = strings.TrimSpace(string(data))
	}

	req := models.CompletionRequest{
		Prompt:      prompt.Fill(tpl.Template, transcription),
		VideoID:     c.VideoID,
		Temperature: c.Temperature,
	}

	err = api.Complete(ctx, req, func(chunk string) error {
		_, werr := os.Stdout.WriteString(chunk)
		return werr
	})
	fmt.Println()
	return err
}

func main() {
	logrus.SetOutput(os.Stderr)

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("upload"),
		kong.Description("Client for the upload-ai media pipeline."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run(&cli))
}
