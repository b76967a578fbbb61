package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// SniffLen - сколько байт читаем для определения типа по магическим байтам.
const SniffLen = 512

// Текстовые файлы не имеют сигнатуры, для них доверяем расширению и проверяем UTF-8.
var textExtensions = map[string]string{
	".txt": "text/plain; charset=utf-8",
	".csv": "text/csv; charset=utf-8",
	".md":  "text/markdown; charset=utf-8",
}

var extAliases = map[string]string{
	".jpeg": ".jpg",
	".tif":  ".tiff",
}

// DetectedType - результат проверки файла.
type DetectedType struct {
	ContentType string
	Extension   string
	IsImage     bool
}

// DetectAttachmentType разрешает изображения, PDF, офисные документы и простой текст.
// head - первые байты файла, name - имя от клиента.
func DetectAttachmentType(head []byte, name string) (DetectedType, error) {
	ext := normalizeExt(filepath.Ext(name))
	if len(head) == 0 {
		return DetectedType{}, fileError("dosya boş olamaz")
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		if ct, ok := textExtensions[ext]; ok && utf8.Valid(trimPartialRune(head)) {
			return DetectedType{ContentType: ct, Extension: ext}, nil
		}
		return DetectedType{}, fileError("dosya türü belirlenemedi; resim, PDF, Office belgesi veya metin dosyası yükleyin")
	}

	allowed := filetype.IsImage(head) || filetype.IsDocument(head) || kind.MIME.Value == "application/pdf"
	if !allowed {
		return DetectedType{}, fileError(fmt.Sprintf("desteklenmeyen dosya türü (%s)", kind.MIME.Value))
	}

	expected := normalizeExt("." + kind.Extension)
	if ext != "" && ext != expected {
		return DetectedType{}, fileError(fmt.Sprintf("dosya uzantısı (%s) gerçek türle (%s) uyuşmuyor", ext, expected))
	}

	return DetectedType{
		ContentType: kind.MIME.Value,
		Extension:   expected,
		IsImage:     filetype.IsImage(head),
	}, nil
}

// IsSpreadsheet проверяет, что загруженный файл - xlsx.
func IsSpreadsheet(head []byte) bool {
	kind, err := filetype.Match(head)
	return err == nil && kind.Extension == "xlsx"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if alias, ok := extAliases[ext]; ok {
		return alias
	}
	return ext
}

// trimPartialRune отрезает многобайтовый символ, разрезанный границей буфера.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size != 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

func fileError(message string) error {
	return apperror.Validation(message, apperror.FieldError{Field: "file", Message: message})
}
