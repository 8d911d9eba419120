package services

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	avatarSize  = 100
	glyphCanvas = 25 // drawn small, then upscaled for the pixel look
)

// AvatarService draws one avatar per username and keeps it on disk at a
// fixed slot (<dir>/<username>.png). The slot is deterministic; the
// colours are random, so regenerating changes the look but not the path.
type AvatarService struct {
	dir string
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAvatarService(dir string) (*AvatarService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &AvatarService{
		dir: dir,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Ref is the reference string stored on the user record.
func (s *AvatarService) Ref(username string) string {
	return "/avatar/" + username
}

// Path is where Generate persists the image.
func (s *AvatarService) Path(username string) string {
	return filepath.Join(s.dir, username+".png")
}

// Generate draws the avatar, writes it to its slot and returns the PNG
// bytes. The first letter of the username goes on a random dark
// background in a random light colour.
func (s *AvatarService) Generate(username string) ([]byte, error) {
	letter := '?'
	for _, r := range username {
		letter = unicode.ToUpper(r)
		break
	}

	small := image.NewRGBA(image.Rect(0, 0, glyphCanvas, glyphCanvas))
	draw.Draw(small, small.Bounds(), image.NewUniform(s.randomDarkColor()), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(s.randomLightColor()),
		Face: basicfont.Face7x13,
	}
	width := drawer.MeasureString(string(letter))
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(glyphCanvas/2) - width/2,
		Y: fixed.I(glyphCanvas/2 + basicfont.Face7x13.Ascent/2 - 2),
	}
	drawer.DrawString(string(letter))

	avatar := imaging.Resize(small, avatarSize, avatarSize, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, avatar); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.Path(username), buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *AvatarService) randomDarkColor() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return color.RGBA{
		R: uint8(s.rnd.Intn(80)),
		G: uint8(s.rnd.Intn(80)),
		B: uint8(s.rnd.Intn(80)),
		A: 255,
	}
}

func (s *AvatarService) randomLightColor() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return color.RGBA{
		R: uint8(s.rnd.Intn(128) + 128),
		G: uint8(s.rnd.Intn(128) + 128),
		B: uint8(s.rnd.Intn(128) + 128),
		A: 255,
	}
}
