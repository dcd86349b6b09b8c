package media

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gallery-api/internal/domain/errs"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MB = 1 << 20

const (
	FolderArtworks    = "artworks"
	FolderHistories   = "histories"
	FolderProfile     = "profile"
	FolderBlog        = "blog"
	FolderExhibitions = "exhibitions"
	FolderAwards      = "awards"
	FolderUploads     = "uploads"
	FolderTemp        = "temp"
)

// Folders lists every prefix a user's files may live under.
var Folders = []string{
	FolderArtworks, FolderHistories, FolderProfile, FolderBlog,
	FolderExhibitions, FolderAwards, FolderUploads, FolderTemp,
}

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".webm": true}
)

// Rule describes what one upload endpoint accepts.
type Rule struct {
	Folder     string
	MaxBytes   int64
	AllowVideo bool
}

var (
	RuleGeneric = Rule{Folder: FolderUploads, MaxBytes: 20 * MB, AllowVideo: true}
	RuleArtwork = Rule{Folder: FolderArtworks, MaxBytes: 20 * MB}
	RuleImage   = Rule{Folder: FolderProfile, MaxBytes: 10 * MB}
	RuleHistory = Rule{Folder: FolderHistories, MaxBytes: 10 * MB}
	RuleTemp    = Rule{Folder: FolderTemp, MaxBytes: 5 * MB}
)

// imageFolders are the folders a client may pick on the image endpoint.
var imageFolders = map[string]int64{
	FolderProfile:     5 * MB,
	FolderBlog:        10 * MB,
	FolderExhibitions: 10 * MB,
	FolderAwards:      10 * MB,
}

// ImageRuleFor returns RuleImage retargeted at folder, or an error for a
// folder clients cannot write to directly.
func ImageRuleFor(folder string) (Rule, error) {
	if folder == "" {
		folder = FolderProfile
	}
	limit, ok := imageFolders[folder]
	if !ok {
		return Rule{}, errs.Invalid(fmt.Sprintf("Unsupported upload folder: %s", folder))
	}
	return Rule{Folder: folder, MaxBytes: limit}, nil
}

var (
	ErrNoFilename      = errs.Invalid("File name is missing")
	ErrUnsupportedType = errs.Invalid("Unsupported file type. Only JPG, PNG, GIF and WebP images are allowed.")
	ErrContentMismatch = errs.Invalid("File content does not match its type")
	ErrForeignURL      = errs.Invalid("Invalid file URL")
	ErrNotYourFile     = errs.Forbidden("You do not have permission to modify this file")
	ErrUnknownFolder   = errs.Invalid("Unknown target folder")
)

func ErrTooLarge(limit int64) error {
	return errs.Invalid(fmt.Sprintf("File must be %dMB or smaller", limit/MB))
}

// Validate checks the extension, declared content type and size of an upload
// against r and returns the lower-cased extension.
func (r Rule) Validate(filename, contentType string, size int64) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrNoFilename
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType = strings.ToLower(contentType)

	switch {
	case imageExtensions[ext] && strings.HasPrefix(contentType, "image/"):
	case r.AllowVideo && videoExtensions[ext] && strings.HasPrefix(contentType, "video/"):
	default:
		return "", ErrUnsupportedType
	}

	if size > r.MaxBytes {
		return "", ErrTooLarge(r.MaxBytes)
	}
	return ext, nil
}

// Sniff detects the real MIME type of data and checks it is in the same
// family (image or video) as the extension claims.
func Sniff(data []byte, ext string) (string, error) {
	detected := mimetype.Detect(data)
	family := "image/"
	if videoExtensions[ext] {
		family = "video/"
	}
	for m := detected; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), family) {
			return detected.String(), nil
		}
	}
	return "", ErrContentMismatch
}

// ObjectKey builds {folder}/{slug}/{YYYYmmdd_HHMMSS}_{8 hex}{ext}.
func ObjectKey(folder, slug, ext string, now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%s/%s_%s%s", folder, slug, now.Format("20060102_150405"), id, ext)
}

// DerivativeKey inserts suffix before the extension: a/b/c.jpg -> a/b/c_thumb.jpg
func DerivativeKey(key, suffix string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_" + suffix + ext
}

// OwnedBy reports whether key sits under one of slug's folders.
func OwnedBy(key, slug string) bool {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[1] != slug || parts[2] == "" {
		return false
	}
	for _, f := range Folders {
		if parts[0] == f {
			return true
		}
	}
	return false
}

// URLOwnedBy reports whether the path of rawURL contains a key under one of
// slug's folders. Bucket names or CDN path prefixes before the key are
// allowed, so this is a filter on stored URLs, not a resolver.
func URLOwnedBy(rawURL, slug string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || slug == "" {
		return false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(segs); i++ {
		if segs[i+1] == slug && isFolder(segs[i]) && segs[len(segs)-1] != "" {
			return true
		}
	}
	return false
}

func UserPrefix(folder, slug string) string {
	return folder + "/" + slug + "/"
}

func TempKeyOwnedBy(key, slug string) bool {
	return strings.HasPrefix(key, UserPrefix(FolderTemp, slug)) && OwnedBy(key, slug)
}

// imageURLRegexp finds image URLs embedded in blog HTML.
var imageURLRegexp = regexp.MustCompile(`https?://[^"'\s<>]+\.(?:jpg|jpeg|png|gif|webp)`)

func ExtractImageURLs(html string) []string {
	return imageURLRegexp.FindAllString(html, -1)
}

func isResizable(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
