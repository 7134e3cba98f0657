// Command volante turns webcam body poses into held keyboard keys so
// that one or two players can steer a racing game with their arms.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/capture"
	"github.com/ayusman/volante/internal/detector"
	"github.com/ayusman/volante/internal/engine"
	"github.com/ayusman/volante/internal/keybind"
	"github.com/ayusman/volante/internal/keyboard"
	"github.com/ayusman/volante/internal/server"
	"github.com/ayusman/volante/internal/store"
	"github.com/ayusman/volante/internal/tray"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	showVersion  bool
	cameraIndex  int
	bindings     keybind.Table
	singlePlayer bool
	preset       string
	savePreset   string
	dbPath       string
	listen       string
	headless     bool
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

	flag.StringVar(&opts.bindings[0].High, "key_for_player1_high", "up",
		"Map high pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[0].Mid, "key_for_player1_mid", "",
		"Map middle pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[0].Low, "key_for_player1_low", "down",
		"Map low pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[0].Left, "key_for_player1_left", "left",
		"Map left wheel direction to the key (empty means no key)")
	flag.StringVar(&opts.bindings[0].Neutral, "key_for_player1_neutral", "",
		"Map neutral wheel direction to the key (empty means no key)")
	flag.StringVar(&opts.bindings[0].Right, "key_for_player1_right", "right",
		"Map right wheel direction to the key (empty means no key)")

	flag.StringVar(&opts.bindings[1].High, "key_for_player2_high", "w",
		"Map high pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[1].Mid, "key_for_player2_mid", "",
		"Map middle pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[1].Low, "key_for_player2_low", "s",
		"Map low pointer position to the key (empty means no key)")
	flag.StringVar(&opts.bindings[1].Left, "key_for_player2_left", "a",
		"Map left wheel direction to the key (empty means no key)")
	flag.StringVar(&opts.bindings[1].Neutral, "key_for_player2_neutral", "",
		"Map neutral wheel direction to the key (empty means no key)")
	flag.StringVar(&opts.bindings[1].Right, "key_for_player2_right", "d",
		"Map right wheel direction to the key (empty means no key)")

	flag.BoolVar(&opts.singlePlayer, "single_player", false,
		"If set, handles only a single player instead of the two players")
	flag.StringVar(&opts.preset, "preset", "",
		"Load the key bindings from the named preset instead of the key flags")
	flag.StringVar(&opts.savePreset, "save_preset", "",
		"Save the key bindings from the flags under the given preset name, then use them")
	flag.StringVar(&opts.dbPath, "db", "",
		"Path to the preset database (default ~/.volante/volante.db)")
	flag.StringVar(&opts.listen, "listen", "",
		"Address for the status server, e.g. :8080 (empty means no server)")
	flag.BoolVar(&opts.headless, "headless", false,
		"If set, runs without the preview window and puts a toggle in the system tray")

	flag.Parse()
	return &opts
}

// validateKeyFlags checks every key flag against the names the keyboard
// sink recognizes and reports all offending flags at once, so they can
// be fixed in a single pass.
func validateKeyFlags(bindings keybind.Table) error {
	keyFlags := []struct {
		flag string
		key  string
	}{
		{"-key_for_player1_high", bindings[0].High},
		{"-key_for_player1_mid", bindings[0].Mid},
		{"-key_for_player1_low", bindings[0].Low},
		{"-key_for_player1_left", bindings[0].Left},
		{"-key_for_player1_neutral", bindings[0].Neutral},
		{"-key_for_player1_right", bindings[0].Right},
		{"-key_for_player2_high", bindings[1].High},
		{"-key_for_player2_mid", bindings[1].Mid},
		{"-key_for_player2_low", bindings[1].Low},
		{"-key_for_player2_left", bindings[1].Left},
		{"-key_for_player2_neutral", bindings[1].Neutral},
		{"-key_for_player2_right", bindings[1].Right},
	}

	var invalid []string
	for _, kf := range keyFlags {
		if !keyboard.Recognized(kf.key) {
			invalid = append(invalid, fmt.Sprintf("%s == %q", kf.flag, kf.key))
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("the following key names are invalid: %s",
			strings.Join(invalid, ", "))
	}
	return nil
}

// resolveDBPath returns the preset database path, defaulting to
// ~/.volante/volante.db and creating the directory if needed.
func resolveDBPath(dbPath string) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, ".volante")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dbDir, "volante.db"), nil
}

// resolveBindings settles the key binding table from the flags and the
// preset store, recording the chosen preset as the active one.
func resolveBindings(opts *options, st *store.Store) (keybind.Table, error) {
	if opts.preset != "" && opts.savePreset != "" {
		return keybind.Table{}, errors.New("at most one of -preset and -save_preset may be given")
	}

	if opts.preset != "" {
		p, err := st.Presets().GetByName(opts.preset)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return keybind.Table{}, fmt.Errorf("preset does not exist: %s", opts.preset)
			}
			return keybind.Table{}, fmt.Errorf("failed to load preset %s: %w", opts.preset, err)
		}

		// Stored bindings may predate the current key table
		if err := p.Bindings.Validate(); err != nil {
			return keybind.Table{}, fmt.Errorf("preset %s holds %w", opts.preset, err)
		}

		if err := st.Settings().Set(store.SettingActivePreset, opts.preset); err != nil {
			return keybind.Table{}, fmt.Errorf("failed to record the active preset: %w", err)
		}

		return p.Bindings, nil
	}

	if err := validateKeyFlags(opts.bindings); err != nil {
		return keybind.Table{}, err
	}

	if opts.savePreset != "" {
		if _, err := st.Presets().Save(opts.savePreset, opts.bindings); err != nil {
			return keybind.Table{}, fmt.Errorf("failed to save preset %s: %w", opts.savePreset, err)
		}

		if err := st.Settings().Set(store.SettingActivePreset, opts.savePreset); err != nil {
			return keybind.Table{}, fmt.Errorf("failed to record the active preset: %w", err)
		}
	}

	return opts.bindings, nil
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Println(version)
		return
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts *options) error {
	// 1. Open the preset store
	dbPath, err := resolveDBPath(opts.dbPath)
	if err != nil {
		return err
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	// 2. Settle and validate the key bindings
	bindings, err := resolveBindings(opts, st)
	if err != nil {
		return err
	}

	// 3. Load the pose detector and the keyboard sink
	fmt.Println("Loading the detector...")
	det, err := detector.NewMoveNetDetector(detector.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to load the detector: %w", err)
	}
	defer det.Close()

	eng := engine.New(engine.Config{
		Bindings:     bindings,
		Detector:     det,
		Keyboard:     keyboard.NewOSKeyboard(),
		SinglePlayer: opts.singlePlayer,
	})

	// 4. Start the status server if requested
	var srv *server.Server
	if opts.listen != "" {
		srv = server.New(server.Config{Store: st})
		go func() {
			log.Printf("Status server listening on %s", opts.listen)
			if err := srv.ListenAndServe(opts.listen); err != nil {
				log.Printf("Status server failed: %v", err)
			}
		}()
	}

	// 5. Open the camera
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

	// 6. Run the frame loop
	if opts.headless {
		err = runHeadless(eng, source, srv)
	} else {
		err = runWindowed(eng, source, srv)
	}
	if err != nil {
		return err
	}

	fmt.Println("Goodbye.")
	return nil
}

// runWindowed processes frames until 'q' is pressed in the preview
// window or the capture fails.
func runWindowed(eng *engine.Engine, source capture.Source, srv *server.Server) error {
	window := gocv.NewWindow("volante")
	defer window.Close()

	for {
		frame, err := source.ReadFrame()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to read a frame from the video capture.")
			return nil
		}

		state, err := eng.ProcessFrame(frame)
		if err != nil {
			frame.Close()
			return fmt.Errorf("failed to process the frame: %w", err)
		}

		eng.Draw(frame, state)

		if srv != nil {
			srv.Publish(state, frame)
		}

		window.IMShow(*frame)
		frame.Close()

		if window.WaitKey(10) == 'q' {
			fmt.Println("Received 'q', quitting...")
			return nil
		}
	}
}

// runHeadless processes frames until the tray's Quit item is clicked or
// the capture fails. The tray toggle enables and disables key
// injection.
func runHeadless(eng *engine.Engine, source capture.Source, srv *server.Server) error {
	tr := tray.New()

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	tr.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
		log.Printf("Key injection enabled: %v", enabled)
	})
	tr.OnQuit(func() {
		close(stopCh)
	})

	go func() {
		defer close(doneCh)
		defer tr.Quit()

		lastKeys := ""
		for {
			select {
			case <-stopCh:
				return
			default:
			}

			frame, err := source.ReadFrame()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Failed to read a frame from the video capture.")
				return
			}

			state, err := eng.ProcessFrame(frame)
			if err != nil {
				frame.Close()
				log.Printf("Failed to process the frame: %v", err)
				return
			}

			if srv != nil {
				eng.Draw(frame, state)
				srv.Publish(state, frame)
			}
			frame.Close()

			// Update the tray only when the held keys change
			if keys := strings.Join(state.ActiveKeys, ", "); keys != lastKeys {
				tr.SetActiveKeys(state.ActiveKeys)
				lastKeys = keys
			}
		}
	}()

	// Blocks until the tray quits, either from its menu or from the
	// frame loop giving up
	tr.Run()
	<-doneCh

	return nil
}
