// Package domain holds medrfq's data types: the raw and acquired forms of an
// RFQ file, extracted line items and the stored RFQDocument, the authorized
// medicine list, vendor records with their scored offers, and the settings
// that steer extraction and matching.
//
// It imports the standard library only.
package domain
