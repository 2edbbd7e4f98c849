// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package report

import (
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/resolver"
	"github.com/zclconf/go-cty/cty"
)

// encodeHCL renders the document as HCL:
//
//	upload_order  = ["A", "C", "B"]
//	stash_count   = 1
//	phantom_count = 0
//
//	stash "A" {
//	  identities = ["u1"]
//	}
//
//	round "1" {
//	  ...
//	}
func encodeHCL(doc *Document) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("upload_order", recordList(doc.UploadOrder))
	body.SetAttributeValue("stash_count", cty.NumberIntVal(int64(doc.StashCount)))
	body.SetAttributeValue("phantom_count", cty.NumberIntVal(int64(doc.PhantomCount)))

	for _, id := range sortedKeys(doc.Stash) {
		body.AppendNewline()
		block := body.AppendNewBlock("stash", []string{string(id)})
		block.Body().SetAttributeValue("identities", identityList(doc.Stash[id]))
	}

	for _, r := range doc.Rounds {
		body.AppendNewline()
		block := body.AppendNewBlock("round", []string{strconv.Itoa(r.Number)})
		rb := block.Body()
		rb.SetAttributeValue("source", cty.StringVal(string(r.Cut.Source)))
		rb.SetAttributeValue("target", cty.StringVal(string(r.Cut.Target)))
		rb.SetAttributeValue("value", cty.NumberFloatVal(r.Value))
		rb.SetAttributeValue("edges", cty.NumberIntVal(int64(r.Edges)))
		rb.SetAttributeValue("phantoms", cty.NumberIntVal(int64(r.Phantoms)))
		rb.SetAttributeValue("stashed", identityList(r.Stashed))
		rb.SetAttributeValue("cycle", hopList(r.Cycle))
	}

	return f.Bytes()
}

func recordList(ids []link.RecordID) cty.Value {
	if len(ids) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ids))
	for i, id := range ids {
		vals[i] = cty.StringVal(string(id))
	}
	return cty.ListVal(vals)
}

func identityList(ids []link.Identity) cty.Value {
	if len(ids) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ids))
	for i, id := range ids {
		vals[i] = cty.StringVal(string(id))
	}
	return cty.ListVal(vals)
}

var hopType = cty.Object(map[string]cty.Type{"source": cty.String, "target": cty.String})

func hopList(hops []resolver.Hop) cty.Value {
	if len(hops) == 0 {
		return cty.ListValEmpty(hopType)
	}
	vals := make([]cty.Value, len(hops))
	for i, h := range hops {
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"source": cty.StringVal(string(h.Source)),
			"target": cty.StringVal(string(h.Target)),
		})
	}
	return cty.ListVal(vals)
}

func sortedKeys(m map[link.RecordID][]link.Identity) []link.RecordID {
	keys := make([]link.RecordID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
