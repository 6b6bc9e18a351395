package scraping

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	log "github.com/sirupsen/logrus"

	"github.com/fortimon/fortimon/check/ipsecvpn"
	"github.com/fortimon/fortimon/common"
	"github.com/fortimon/fortimon/db"
)

const (
	snmpOIDSysDescr    = ".1.3.6.1.2.1.1.1.0"
	snmpOIDSysObjectID = ".1.3.6.1.2.1.1.2.0"
)

const snmpTimeout = 5 * time.Second

// FortigateSNMP - Scrape a Fortigate firewall using SNMP.
func FortigateSNMP(device common.Device, startTime time.Time) bool {
	credential, foundCredential := common.GlobalCredentials[device.CredentialID]
	if !foundCredential {
		log.WithFields(log.Fields{
			"device": device.Address,
		}).Warnf("Failed to find credential: %v", device.CredentialID)
		return false
	}

	port := uint16(161)
	if device.Port > 0 {
		port = uint16(device.Port)
	}
	client := &gosnmp.GoSNMP{
		Target:    device.Address,
		Port:      port,
		Community: credential.Community,
		Version:   gosnmp.Version2c,
		Timeout:   snmpTimeout,
		Retries:   1,
	}
	err := client.Connect()
	if !checkDeviceFailure(device, "Failed to connect to device", err) {
		return false
	}
	defer client.Conn.Close()

	if !fortigateSNMPDetect(device, client, startTime) {
		return false
	}

	rows, ok := fortigateSNMPTunnelTable(device, client)
	if !ok {
		return false
	}
	return checkTunnels(device, startTime, rows)
}

// fortigateSNMPDetect - Check that the device actually is a Fortinet device before
// polling vendor OIDs, and record its identity.
func fortigateSNMPDetect(device common.Device, client *gosnmp.GoSNMP, startTime time.Time) bool {
	result, err := client.Get([]string{snmpOIDSysDescr, snmpOIDSysObjectID})
	if !checkDeviceFailure(device, "Failed to get system OIDs", err) {
		return false
	}

	sysDescr := ""
	sysObjectID := ""
	for _, variable := range result.Variables {
		switch variable.Name {
		case snmpOIDSysDescr:
			sysDescr = snmpValueString(variable)
		case snmpOIDSysObjectID:
			sysObjectID = snmpValueString(variable)
		}
	}

	if !strings.HasPrefix(sysObjectID, ipsecvpn.FortinetEnterpriseOID) {
		log.WithFields(log.Fields{
			"device":        device.Address,
			"sys_object_id": sysObjectID,
		}).Warn("Device is not a Fortinet device, skipping")
		return false
	}

	sourceDeviceEntry := common.SourceDeviceEntry{
		Time:     startTime,
		Source:   device.Address,
		Vendor:   "Fortinet",
		Software: sysDescr,
		Other:    sysObjectID,
	}
	db.StoreSourceDeviceEntry(sourceDeviceEntry)

	return true
}

// fortigateSNMPTunnelTable - Fetch the Phase-2 tunnel table columns and join them into raw rows.
func fortigateSNMPTunnelTable(device common.Device, client *gosnmp.GoSNMP) ([]ipsecvpn.RawRow, bool) {
	names, ok := snmpWalkColumn(device, client, ipsecvpn.TunnelNameOID)
	if !ok {
		return nil, false
	}
	inOctets, ok := snmpWalkColumn(device, client, ipsecvpn.TunnelInOctetsOID)
	if !ok {
		return nil, false
	}
	outOctets, ok := snmpWalkColumn(device, client, ipsecvpn.TunnelOutOctetsOID)
	if !ok {
		return nil, false
	}
	statuses, ok := snmpWalkColumn(device, client, ipsecvpn.TunnelStatusOID)
	if !ok {
		return nil, false
	}

	rows := make([]ipsecvpn.RawRow, 0, len(names))
	for index, name := range names {
		in, foundIn := inOctets[index]
		out, foundOut := outOctets[index]
		status, foundStatus := statuses[index]
		if !foundIn || !foundOut || !foundStatus {
			showDeviceFailure(device, fmt.Sprintf("Incomplete tunnel table row: %v", name))
			continue
		}
		rows = append(rows, ipsecvpn.RawRow{
			Name:      name,
			InOctets:  in,
			OutOctets: out,
			Status:    status,
		})
	}
	return rows, true
}

// snmpWalkColumn - Walk one table column, keyed by table index (OID suffix).
func snmpWalkColumn(device common.Device, client *gosnmp.GoSNMP, columnOID string) (map[string]string, bool) {
	pdus, err := client.BulkWalkAll(columnOID)
	if !checkDeviceFailure(device, fmt.Sprintf("Failed to walk column: %v", columnOID), err) {
		return nil, false
	}
	values := make(map[string]string, len(pdus))
	for _, pdu := range pdus {
		index := strings.TrimPrefix(strings.TrimPrefix(pdu.Name, columnOID), ".")
		values[index] = snmpValueString(pdu)
	}
	return values, true
}

// snmpValueString - Render a PDU value as the raw text the check layer consumes.
func snmpValueString(pdu gosnmp.SnmpPDU) string {
	switch value := pdu.Value.(type) {
	case []byte:
		return string(value)
	case string:
		return value
	default:
		return gosnmp.ToBigInt(pdu.Value).String()
	}
}
