package common

import (
	log "github.com/sirupsen/logrus"

	"github.com/fortimon/fortimon/util"
)

// Connection types (device type plus protocol).
const (
	ConnectionTypeFortigateSNMP = "fortigate_snmp"
	ConnectionTypeFortigateSSH  = "fortigate_ssh"
)

// Credential - Credential for a device.
// Username/password/private key apply to SSH devices, community to SNMP devices.
type Credential struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	PrivateKeyPath string `json:"private_key_path"`
	Community      string `json:"community"`
}

// Device - A device to scrape.
type Device struct {
	Address        string `json:"address"` // Unique
	Port           uint   `json:"port"`    // Optional, default to normal service port
	ConnectionType string `json:"connection_type"`
	CredentialID   string `json:"credential_id"`
}

// LoadCredentials - Load credentials from file from config.
func LoadCredentials() bool {
	if GlobalConfig.CredentialsPath == "" {
		log.Error("Credentials config path missing")
		return false
	}

	log.WithFields(log.Fields{
		"credentials_path": GlobalConfig.CredentialsPath,
	}).Trace("Loading credentials")
	if !util.ParseJSONFile(&GlobalCredentials, GlobalConfig.CredentialsPath) {
		return false
	}

	for credentialID, credential := range GlobalCredentials {
		if credentialID == "" {
			log.Error("Invalid credential, empty ID")
			return false
		}
		if credential.Username == "" && credential.Community == "" {
			log.WithFields(log.Fields{
				"credential_id": credentialID,
			}).Error("Invalid credential, needs either a username or a community")
			return false
		}
	}

	log.WithFields(log.Fields{
		"credential_count": len(GlobalCredentials),
	}).Info("Loaded credentials")

	return true
}

// LoadDevices - Load devices from file from config.
func LoadDevices() bool {
	if GlobalConfig.DevicesPath == "" {
		log.Error("Device config path missing")
		return false
	}

	log.WithFields(log.Fields{
		"devices_path": GlobalConfig.DevicesPath,
	}).Trace("Loading devices")
	if !util.ParseJSONFile(&GlobalDevices, GlobalConfig.DevicesPath) {
		return false
	}

	deviceAddresses := make(map[string]bool)
	for _, device := range GlobalDevices {
		if device.Address == "" || device.CredentialID == "" {
			log.WithFields(log.Fields{
				"device_address": device.Address,
			}).Error("Invalid device, missing fields")
			return false
		}
		// Check for duplicate address
		if _, found := deviceAddresses[device.Address]; found {
			log.WithFields(log.Fields{
				"device_address": device.Address,
			}).Error("Duplicate device address found")
			return false
		}
		deviceAddresses[device.Address] = true
		// Check if credential ID exists and fits the transport
		credential, found := GlobalCredentials[device.CredentialID]
		if !found {
			log.WithFields(log.Fields{
				"device_address": device.Address,
				"credential_id":  device.CredentialID,
			}).Error("Invalid device, credential ID not found")
			return false
		}
		// Check if connection type exists
		switch connectionType := device.ConnectionType; connectionType {
		case ConnectionTypeFortigateSNMP:
			if credential.Community == "" {
				log.WithFields(log.Fields{
					"device_address": device.Address,
					"credential_id":  device.CredentialID,
				}).Error("Invalid device, SNMP device needs a credential with a community")
				return false
			}
		case ConnectionTypeFortigateSSH:
			if credential.Username == "" {
				log.WithFields(log.Fields{
					"device_address": device.Address,
					"credential_id":  device.CredentialID,
				}).Error("Invalid device, SSH device needs a credential with a username")
				return false
			}
		default:
			log.WithFields(log.Fields{
				"device_address":  device.Address,
				"connection_type": device.ConnectionType,
			}).Error("Invalid device, connection type not found")
			return false
		}
	}

	log.WithFields(log.Fields{
		"device_count": len(GlobalDevices),
	}).Info("Loaded devices")

	return true
}
