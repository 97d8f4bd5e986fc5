package vault

import (
	"strings"

	"github.com/MKhiriev/keychain-vault/internal/validators"
)

// On-storage layout, relative to the storage root.
const (
	dataDir      = "data/default"
	historyDir   = dataDir + "/history"
	keyFilePath  = dataDir + "/encryptionKeys.js"
	hintFilePath = dataDir + "/.password.hint"
	indexPath    = dataDir + "/contents.js"

	itemFileExt = ".1password"
)

func itemPath(uuid string) string {
	return dataDir + "/" + uuid + itemFileExt
}

func historyPath(revision string) string {
	return historyDir + "/" + revision + itemFileExt
}

// itemUUIDFromName returns the uuid of an item file name, or false if name
// is not one.
func itemUUIDFromName(name string) (string, bool) {
	uuid, ok := strings.CutSuffix(name, itemFileExt)
	if !ok || !validators.IsIdentifier(uuid) {
		return "", false
	}
	return uuid, true
}
