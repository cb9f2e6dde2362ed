package misc

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return []byte{}, errors.New("no filename supplied")
	}
	// open file for reading
	file, err := os.Open(fileName)
	if err != nil {
		return []byte{}, fmt.Errorf("unable to open %s - %w", fileName, err)
	}
	// read contents from open file
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		file.Close()
		return []byte{}, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return []byte{}, fmt.Errorf("unable to close %s - %w", fileName, err)
	}

	return fileBytes, nil
}
