// Package cdda decodes Audio CD metadata, most importantly the raw
// Table Of Contents blob a SCSI READ TOC command returns.
package cdda

// SampleRate is the number of samples per second. All Redbook audio
// CDs use 44.1KHz.
const SampleRate = 44100

// BytesPerSample is 2 bytes, representing signed 16-bit samples.
const BytesPerSample = 2

// Channels is the number of audio channels in the data. All Redbook
// audio CDs are stereo.
const Channels = 2

// SectorsPerSecond is the number of audio sectors in one second of
// audio. A sector is the smallest addressable unit of CD data, defined
// as 1/75th of a second. Redbook track offsets are specified in MM:SS:FF.
const SectorsPerSecond = 75

// BytesPerSector is the number of bytes of audio contained in one
// sector of CD-DA data, 2352 bytes.
//
// Sectors are the unit of interest when reading data from CDs. Data
// CDs and DVDs expose a smaller 2048-byte user-data sector instead.
const BytesPerSector = SampleRate * Channels * BytesPerSample / SectorsPerSecond

// LeadOutTrack is the track number of the lead-out descriptor in the
// table of contents. Its address marks the end of the last audio track.
const LeadOutTrack = 0xAA
