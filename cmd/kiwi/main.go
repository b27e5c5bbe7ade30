package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kiwitts/kiwi-go/internal/audio"
	"github.com/kiwitts/kiwi-go/internal/document"
	"github.com/kiwitts/kiwi-go/internal/logging"
	"github.com/kiwitts/kiwi-go/internal/tts"
)

const previewLength = 100

func main() {
	voice := flag.String("voice", "en-US-Chirp3-HD-Charon", "voice name to synthesize with")
	output := flag.String("output", "", "output file path (default: <input>_tts.<ext> next to the input)")
	format := flag.String("format", "MP3", "audio format: MP3 or LINEAR16")
	language := flag.String("language", "en-US", "language code for synthesis")
	listVoices := flag.Bool("list-voices", false, "list available voices and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <document>\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Converts a text or markdown document to speech.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listVoices {
		printVoices(*language)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger := logging.New(level, "text")

	if err := run(flag.Arg(0), *voice, *output, *format, *language, *verbose, logger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, tts.ErrAuthentication) {
			fmt.Fprintln(os.Stderr, "\nTo set up credentials:")
			fmt.Fprintln(os.Stderr, "  1. Install the gcloud CLI")
			fmt.Fprintln(os.Stderr, "  2. Run: gcloud auth application-default login")
			fmt.Fprintln(os.Stderr, "  3. Or point GOOGLE_APPLICATION_CREDENTIALS at a service account key")
		}
		os.Exit(1)
	}
}

func run(inputPath, voice, output, format, language string, verbose bool, logger *slog.Logger) error {
	if err := document.ValidateInput(inputPath); err != nil {
		return err
	}

	encoding, err := audio.ParseFormat(format)
	if err != nil {
		return err
	}

	extractor, err := document.DefaultRegistry().ForPath(inputPath)
	if err != nil {
		return err
	}

	text, err := extractor.Parse(inputPath)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("document contains no text: %s", inputPath)
	}

	logger.Debug("document extracted",
		"extractor", extractor.Name(),
		"bytes", len(text),
	)

	if verbose {
		fmt.Printf("Text preview: %s\n", preview(text))
		fmt.Printf("Estimated audio: %.0f seconds\n", estimateSeconds(text))
	}

	ctx := context.Background()
	client, err := tts.New(ctx, tts.Config{
		VoiceName:    voice,
		LanguageCode: language,
		Encoding:     encoding,
	}, logger)
	if err != nil {
		return err
	}

	outputPath := audio.OutputPath(inputPath, output, encoding)

	result := client.Synthesize(ctx, text, outputPath)
	if !result.Success {
		return errors.New(result.ErrorMessage)
	}

	fmt.Printf("Audio written to %s (%.2fs)\n", result.OutputFile, result.Duration.Seconds())
	return nil
}

// printVoices lists the catalog for a language, one voice per line.
func printVoices(language string) {
	fmt.Printf("Available voices for %s:\n", language)
	for _, v := range tts.ListVoices(language) {
		fmt.Printf("  %s\n", v)
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}

// estimateSeconds guesses the audio length from word count at a typical
// narration pace of 150 words per minute.
func estimateSeconds(text string) float64 {
	words := len(strings.Fields(text))
	return float64(words) / 150 * 60
}
