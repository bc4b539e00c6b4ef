// pi-interfaces
// Copyright (c) 2025 The pi-interfaces Authors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of pi-interfaces.
//
// pi-interfaces is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// pi-interfaces is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with pi-interfaces; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package pn532

// PN532 command codes
const (
	cmdDiagnose            = 0x00
	cmdGetFirmwareVersion  = 0x02
	cmdGetGeneralStatus    = 0x04
	cmdReadRegister        = 0x06
	cmdWriteRegister       = 0x08
	cmdReadGPIO            = 0x0C
	cmdWriteGPIO           = 0x0E
	cmdSamConfiguration    = 0x14
	cmdPowerDown           = 0x16
	cmdRFConfiguration     = 0x32
	cmdInDataExchange      = 0x40
	cmdInListPassiveTarget = 0x4A
	cmdInRelease           = 0x52
)

// commandSpec is one row of the static command catalog: the wire name used
// in errors and debug output, and the minimum data length a well-formed
// response carries after the TFI and command echo are stripped.
type commandSpec struct {
	name        string
	minResponse int
}

// commandTable is immutable and shared by every Device.
var commandTable = map[byte]commandSpec{
	cmdDiagnose:            {name: "Diagnose", minResponse: 1},
	cmdGetFirmwareVersion:  {name: "GetFirmwareVersion", minResponse: 4},
	cmdGetGeneralStatus:    {name: "GetGeneralStatus", minResponse: 4},
	cmdReadRegister:        {name: "ReadRegister", minResponse: 1},
	cmdWriteRegister:       {name: "WriteRegister", minResponse: 0},
	cmdReadGPIO:            {name: "ReadGPIO", minResponse: 3},
	cmdWriteGPIO:           {name: "WriteGPIO", minResponse: 0},
	cmdSamConfiguration:    {name: "SAMConfiguration", minResponse: 0},
	cmdPowerDown:           {name: "PowerDown", minResponse: 0},
	cmdRFConfiguration:     {name: "RFConfiguration", minResponse: 0},
	cmdInDataExchange:      {name: "InDataExchange", minResponse: 1},
	cmdInListPassiveTarget: {name: "InListPassiveTarget", minResponse: 1},
	cmdInRelease:           {name: "InRelease", minResponse: 1},
}

// PowerDown wake-up source flags
const (
	WakeupHSU     byte = 0x01 // Wake-up by High Speed UART
	WakeupSPI     byte = 0x02 // Wake-up by SPI
	WakeupI2C     byte = 0x04 // Wake-up by I2C
	WakeupGPIOP32 byte = 0x08 // Wake-up by GPIO P32
	WakeupGPIOP34 byte = 0x10 // Wake-up by GPIO P34
	WakeupRF      byte = 0x20 // Wake-up by RF field
	WakeupINT1    byte = 0x80 // Wake-up by GPIO P72/INT1
)
