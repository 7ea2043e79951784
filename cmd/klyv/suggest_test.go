package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDidYouMeanFindsCloseMatch(t *testing.T) {
	assert.Equal(t, ` (did you mean "DataType"?)`, didYouMean("DataTyp"))
	assert.Equal(t, ` (did you mean "Helper"?)`, didYouMean("Helpr"))
}

func TestDidYouMeanReturnsEmptyForNonsense(t *testing.T) {
	assert.Equal(t, "", didYouMean("xyzzyplugh"))
}
