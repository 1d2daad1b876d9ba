package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/primait/auroramap/pkg/io/logging"
)

func PrettyJSONToFile(filePath string, fileName string, s interface{}) {
	if err := os.MkdirAll(filePath, os.FileMode(0775)); err != nil {
		logging.HandleError(err, "Files - PrettyJSONToFile", "Error on creating/reading output folder")
	}

	filePath = filePath + string(filepath.Separator) + fileName
	if err := os.WriteFile(filePath, logging.GetLogManager().PrettyJSON(s), 0600); err != nil {
		logging.HandleError(err, "Files - PrettyJSONToFile", "Error on writing file")
	}
}

// CSVToFile writes a slice of records annotated with csv tags.
func CSVToFile(filePath string, fileName string, records interface{}) {
	if err := os.MkdirAll(filePath, os.FileMode(0775)); err != nil {
		logging.HandleError(err, "Files - CSVToFile", "Error on creating/reading output folder")
	}

	data, err := gocsv.MarshalBytes(records)
	if err != nil {
		logging.HandleError(err, "Files - CSVToFile", "Error on marshalling records to CSV")
	}

	filePath = filePath + string(filepath.Separator) + fileName
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		logging.HandleError(err, "Files - CSVToFile", "Error on writing file")
	}
}

func NormalizePath(path string) string {
	usr, _ := user.Current()
	dir := usr.HomeDir
	if path == "~" {
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(dir, path[2:])
	}

	path, _ = filepath.Abs(filepath.Clean(path))
	return path
}
