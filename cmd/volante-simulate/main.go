// Command volante-simulate replays a pre-recorded video through the
// controller with a logging keyboard, so bindings and poses can be
// tuned without touching the OS.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/capture"
	"github.com/ayusman/volante/internal/detector"
	"github.com/ayusman/volante/internal/engine"
	"github.com/ayusman/volante/internal/keybind"
	"github.com/ayusman/volante/internal/keyboard"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	showVersion  bool
	source       string
	singlePlayer bool
}

func parseFlags() *options {
	var opts options

	flag.BoolVar(&opts.showVersion, "version", false,
		"show the current version and exit")
	flag.StringVar(&opts.source, "source", "",
		"Path to the video file")
	flag.BoolVar(&opts.singlePlayer, "single_player", false,
		"If set, handles only a single player instead of the two players")

	flag.Parse()
	return &opts
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Println(version)
		return
	}

	if opts.source == "" {
		fmt.Fprintln(os.Stderr, "flag -source is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts *options) error {
	fmt.Println("Loading the detector...")
	det, err := detector.NewMoveNetDetector(detector.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to load the detector: %w", err)
	}
	defer det.Close()

	// The simulation presses no real keys, it only logs them
	eng := engine.New(engine.Config{
		Bindings:     keybind.DefaultTable(),
		Detector:     det,
		Keyboard:     keyboard.NewLogKeyboard(),
		SinglePlayer: opts.singlePlayer,
	})

	fmt.Println("Opening the video file...")
	source := capture.NewVideoFile(opts.source)
	if err := source.Open(); err != nil {
		return fmt.Errorf("failed to open -source: %w", err)
	}
	defer func() {
		fmt.Println("Closing the video file...")
		if err := source.Close(); err != nil {
			log.Printf("Error closing the video file: %v", err)
		}
		fmt.Println("Video file closed.")
	}()

	window := gocv.NewWindow("volante-simulate")
	defer window.Close()

	for {
		frame, err := source.ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrNoMoreFrames) {
				fmt.Printf("Could not read any more frames from -source: %s\n", opts.source)
				break
			}
			return fmt.Errorf("failed to read a frame from -source: %w", err)
		}

		state, err := eng.ProcessFrame(frame)
		if err != nil {
			frame.Close()
			return fmt.Errorf("failed to process the frame: %w", err)
		}

		eng.Draw(frame, state)

		window.IMShow(*frame)
		frame.Close()

		if window.WaitKey(25) == 'q' {
			fmt.Println("Received 'q', quitting...")
			break
		}
	}

	fmt.Println("Goodbye.")
	return nil
}
