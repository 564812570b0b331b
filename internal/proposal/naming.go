package proposal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const nameLimit = 50

var (
	fileNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9äöüÄÖÜß\s&]`)
	folderUnsafe   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// FileName is the document name: "YYMMDD_Angebot_<company> ExposéProfi.docx".
func FileName(date time.Time, company string) string {
	safe := truncate(fileNameUnsafe.ReplaceAllString(company, ""), nameLimit)
	return fmt.Sprintf("%s_Angebot_%s ExposéProfi.docx", date.Format("060102"), safe)
}

// ClientFolder names the output folder of a client. Without a client number the
// company name is suffixed with the current unix milliseconds.
func ClientFolder(clientNumber, company string, now time.Time) string {
	if strings.TrimSpace(clientNumber) == "" {
		return folderPart(company) + "_" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	return folderPart(clientNumber) + "_" + folderPart(company)
}

// NewOfferNumber returns "AN-YYMMDD-XXXXXX" with a random suffix.
func NewOfferNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("AN-%s-%s", date.Format("060102"), suffix)
}

func folderPart(s string) string {
	if s == "" {
		return "unknown"
	}
	return truncate(folderUnsafe.ReplaceAllString(s, "_"), nameLimit)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
