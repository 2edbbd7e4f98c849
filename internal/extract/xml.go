// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/specialistvlad/stashgrid/internal/link"
)

var (
	internalRef = regexp.MustCompile(`IRI:(.*):IRI`)
	resourceIRI = regexp.MustCompile(`^http://rdfh\.ch/\d{4}/`)
)

// Source tells where a link came from in the document.
type Source struct {
	Resource link.RecordID
	Property string
	// Value is the position of the value within its property, from 0.
	Value int
}

// Result is the extracted batch plus the origin of every link identity, so
// a patch client can find the stashed value again.
type Result struct {
	Batch   *link.Batch
	Sources map[link.Identity]Source
}

type xmlResource struct {
	ID    string    `xml:"id,attr"`
	Props []xmlProp `xml:",any"`
}

type xmlProp struct {
	XMLName xml.Name
	Name    string     `xml:"name,attr"`
	Values  []xmlValue `xml:",any"`
}

type xmlValue struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Inner   []byte `xml:",innerxml"`
}

// FromXML extracts records and links from r. Resources are recorded in
// document order; each link gets a fresh random identity.
func FromXML(r io.Reader) (*Result, error) {
	res := &Result{
		Batch:   &link.Batch{},
		Sources: make(map[link.Identity]Source),
	}

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "resource" {
			continue
		}

		var resource xmlResource
		if err := decoder.DecodeElement(&resource, &start); err != nil {
			return nil, fmt.Errorf("failed to decode resource: %w", err)
		}
		if resource.ID == "" {
			return nil, fmt.Errorf("resource without id at offset %d", decoder.InputOffset())
		}
		if err := res.addResource(&resource); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (res *Result) addResource(resource *xmlResource) error {
	id := link.RecordID(resource.ID)
	res.Batch.Records = append(res.Batch.Records, id)

	for _, prop := range resource.Props {
		switch prop.XMLName.Local {
		case "resptr-prop":
			for i, v := range prop.Values {
				target := strings.TrimSpace(v.Text)
				if target == "" || resourceIRI.MatchString(target) {
					continue
				}
				l := link.Single{From: id, To: link.RecordID(target), ID: link.NewIdentity()}
				res.Batch.Singles = append(res.Batch.Singles, l)
				res.Sources[l.ID] = Source{Resource: id, Property: prop.Name, Value: i}
			}
		case "text-prop":
			for i, v := range prop.Values {
				targets, err := textTargets(v.Inner)
				if err != nil {
					return fmt.Errorf("failed to read text value %d of %q on resource %q: %w", i, prop.Name, id, err)
				}
				if len(targets) == 0 {
					continue
				}
				l := link.Group{From: id, To: targets, ID: link.NewIdentity()}
				res.Batch.Groups = append(res.Batch.Groups, l)
				res.Sources[l.ID] = Source{Resource: id, Property: prop.Name, Value: i}
			}
		}
	}
	return nil
}

// textTargets collects the internal ids referenced by href attributes below a
// text value, first occurrence first. The same id twice is one reference.
func textTargets(inner []byte) ([]link.RecordID, error) {
	var out []link.RecordID
	seen := make(map[link.RecordID]struct{})

	decoder := xml.NewDecoder(bytes.NewReader(inner))
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local != "href" {
				continue
			}
			m := internalRef.FindStringSubmatch(attr.Value)
			if m == nil {
				continue
			}
			target := link.RecordID(m[1])
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			out = append(out, target)
		}
	}
}
