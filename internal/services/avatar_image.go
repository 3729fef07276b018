package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/types"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

const avatarSize = 512

// AvatarImageService renders an initials placeholder avatar and uploads it
// to the bucket. Returns the object key and public URL.
type AvatarImageService interface {
	Generate(ctx context.Context, user *types.User) (key string, url string, err error)
}

type avatarImageService struct {
	bucket BucketService
	font   *truetype.Font
	colors []string
	log    *logger.Logger
}

func NewAvatarImageService(bucket BucketService, baseLog *logger.Logger) (AvatarImageService, error) {
	log := baseLog.With("service", "AvatarImageService")

	fontPath := utils.GetEnv("AVATAR_FONT_PATH", "assets/fonts/Inter-Bold.ttf", log)
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read avatar font: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse avatar font: %w", err)
	}

	colors := []string{"#4F46E5", "#0891B2", "#059669", "#D97706", "#DC2626", "#7C3AED"}
	if colorsPath := utils.GetEnv("AVATAR_COLORS_PATH", "", log); colorsPath != "" {
		raw, err := os.ReadFile(colorsPath)
		if err != nil {
			return nil, fmt.Errorf("read avatar colors: %w", err)
		}
		if err := json.Unmarshal(raw, &colors); err != nil {
			return nil, fmt.Errorf("parse avatar colors: %w", err)
		}
	}
	return &avatarImageService{bucket: bucket, font: parsedFont, colors: colors, log: log}, nil
}

func (s *avatarImageService) Generate(ctx context.Context, user *types.User) (string, string, error) {
	initials := initialsFor(user)
	data, err := s.render(initials)
	if err != nil {
		return "", "", err
	}

	key := fmt.Sprintf("user_avatar/%s/%d.png", user.ID, time.Now().Unix())
	if err := s.bucket.Upload(ctx, key, "image/png", data); err != nil {
		return "", "", err
	}
	if user.AvatarKey != "" && user.AvatarKey != key {
		if err := s.bucket.Delete(ctx, user.AvatarKey); err != nil {
			s.log.Warn("Failed to delete previous avatar", "key", user.AvatarKey, "error", err)
		}
	}
	return key, s.bucket.PublicURL(key), nil
}

func (s *avatarImageService) render(initials string) ([]byte, error) {
	dc := gg.NewContext(avatarSize, avatarSize)

	h := fnv.New32a()
	h.Write([]byte(initials))
	dc.SetHexColor(s.colors[int(h.Sum32())%len(s.colors)])
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.Fill()

	face := truetype.NewFace(s.font, &truetype.Options{
		Size:    220,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(initials, avatarSize/2, avatarSize/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf.Bytes(), nil
}

func initialsFor(user *types.User) string {
	var b strings.Builder
	if user.FirstName != "" {
		b.WriteString(strings.ToUpper(user.FirstName[:1]))
	}
	if user.LastName != "" {
		b.WriteString(strings.ToUpper(user.LastName[:1]))
	}
	if b.Len() == 0 && user.Email != "" {
		b.WriteString(strings.ToUpper(user.Email[:1]))
	}
	if b.Len() == 0 {
		b.WriteString("F")
	}
	return b.String()
}
