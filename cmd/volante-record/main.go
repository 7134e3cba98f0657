// Command volante-record captures webcam video to an .mp4 file which
// can later be fed to volante-simulate.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/capture"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	showVersion bool
	cameraIndex int
	target      string
}

func parseFlags() *options {
	var opts options

	flag.BoolVar(&opts.showVersion, "version", false,
		"show the current version and exit")
	flag.IntVar(&opts.cameraIndex, "camera_index", 0,
		"Index for the camera that should be used. Usually 0 is your web cam, "+
			"but there are also systems where the web cam was given at index -1 or 2. "+
			"We rely on OpenCV and this has not been fixed in OpenCV yet. Please see "+
			"https://github.com/opencv/opencv/issues/4269")
	flag.StringVar(&opts.target, "target", "",
		"Path to where to store the video")

	flag.Parse()
	return &opts
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Println(version)
		return
	}

	if opts.target == "" {
		fmt.Fprintln(os.Stderr, "flag -target is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts *options) error {
	// The target is validated before the camera opens, so a typo in the
	// extension does not cost a recording session
	recorder, err := capture.NewRecorder(opts.target)
	if err != nil {
		return err
	}
	defer func() {
		fmt.Println("Closing the video writer...")
		if err := recorder.Close(); err != nil {
			log.Printf("Error closing the video writer: %v", err)
		}
		fmt.Println("Video writer closed.")
	}()

	fmt.Println("Opening the video capture...")
	source := capture.NewCamera(opts.cameraIndex)
	if err := source.Open(); err != nil {
		return fmt.Errorf("failed to open the video capture at index %d: %w",
			opts.cameraIndex, err)
	}
	defer func() {
		fmt.Println("Closing the video capture...")
		if err := source.Close(); err != nil {
			log.Printf("Error closing the video capture: %v", err)
		}
		fmt.Println("Video capture closed.")
	}()

	window := gocv.NewWindow("volante-record")
	defer window.Close()

	for {
		frame, err := source.ReadFrame()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to read a frame from the video capture.")
			break
		}

		window.IMShow(*frame)

		if err := recorder.Write(frame); err != nil {
			frame.Close()
			return fmt.Errorf("failed to write the frame: %w", err)
		}
		frame.Close()

		if window.WaitKey(10) == 'q' {
			fmt.Println("Received 'q', quitting...")
			break
		}
	}

	fmt.Println("Goodbye.")
	return nil
}
