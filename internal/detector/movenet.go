package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MoveNetDetector implements Detector using a Python MoveNet subprocess.
type MoveNetDetector struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMoveNetDetector creates a new MoveNet detector.
// The Python process is started lazily on first detection.
func NewMoveNetDetector(config Config) (*MoveNetDetector, error) {
	scriptPath := findMoveNetScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("movenet_service.py not found")
	}

	return &MoveNetDetector{
		config: config,
	}, nil
}

// Detect analyzes a frame and returns detected body poses.
func (d *MoveNetDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Poses []jsonPose `json:"poses"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	poses := response.Poses
	if d.config.MaxPoses > 0 && len(poses) > d.config.MaxPoses {
		poses = poses[:d.config.MaxPoses]
	}

	result := make([]Detection, 0, len(poses))
	for _, p := range poses {
		result = append(result, p.toDetection(d.config.MinScore))
	}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return result, nil
}

// Close shuts down the Python process.
func (d *MoveNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MoveNetDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	scriptPath := findMoveNetScript()
	if scriptPath == "" {
		return fmt.Errorf("movenet_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, scriptPath)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start movenet service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

func (d *MoveNetDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MoveNetDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(30*time.Second, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

func findMoveNetScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/movenet_service.py",
		"../scripts/movenet_service.py",
		filepath.Join(execDir, "scripts/movenet_service.py"),
		filepath.Join(os.Getenv("HOME"), ".volante/scripts/movenet_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	// Get executable directory to find project root
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".volante/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonPose represents the JSON structure from the Python service.
// Keypoints arrive in COCO order, 17 per pose.
type jsonPose struct {
	Keypoints []jsonKeypoint `json:"keypoints"`
	Score     float64        `json:"score"`
}

type jsonKeypoint struct {
	Y     float64 `json:"y"`
	X     float64 `json:"x"`
	Score float64 `json:"score"`
}

func (p jsonPose) toDetection(minScore float64) Detection {
	det := make(Detection, len(p.Keypoints))
	for i, kp := range p.Keypoints {
		if i >= len(cocoOrder) {
			break
		}
		if kp.Score < minScore {
			continue
		}
		det[cocoOrder[i]] = Point{X: kp.X, Y: kp.Y}
	}
	return det
}
