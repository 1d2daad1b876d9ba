package filesystem

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/primait/auroramap/pkg/io/logging"
)

// Zip stores every entry of values as a dated JSON file inside a single
// archive named after the AWS profile.
func Zip(path string, profile string, values *map[string]interface{}) {
	logger := logging.GetLogManager()
	today := time.Now().Format("20060102")
	fileSeparator := string(filepath.Separator)
	profile = filepath.Clean(strings.Replace(profile, fileSeparator, "-", -1))
	filePtr, err := os.Create(fmt.Sprintf("%s%sauroramap-%s_%s.zip", filepath.Clean(path), fileSeparator, profile, today))
	if err != nil {
		logging.HandleError(err, "Zip", "Error on creating output folder")
	}
	defer func() {
		if err := filePtr.Close(); err != nil {
			logging.HandleError(err, "Zip", "Error closing file")
		}
	}()

	zipWriter := zip.NewWriter(filePtr)
	defer zipWriter.Close()

	for key, value := range *values {
		writer, err := zipWriter.Create(fmt.Sprintf("%s_%s.json", key, today))
		if err != nil {
			logging.HandleError(err, "Zip", "Error on creating ZIP entry")
		}

		if _, err = writer.Write(logger.PrettyJSON(value)); err != nil {
			logging.HandleError(err, "Zip", "Error on writing file content")
		}
	}
}
