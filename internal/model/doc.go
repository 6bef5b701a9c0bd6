// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for solutions and conversations.
//
// # Key Types
//
//   - Solution: a ranked diagnostic answer with confidence, source and steps
//   - Step: one instruction, typed warning, tip or normal
//   - Conversation: in-memory transcript of the question and the reply
//   - Message: single transcript entry; assistant replies carry solutions
//
// Solution lists are validated at the boundary with ValidateSolutions; a list
// with any invalid record is rejected as a whole.
//
// # Usage
//
//	set, err := model.LoadSolutions("solutions.yaml")
//	if err != nil {
//	    return err
//	}
//	conv := model.NewDiagnosticConversation(set.Question, set.Solutions)
package model
